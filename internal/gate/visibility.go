package gate

import "github.com/dmitrijs2005/arcaives/internal/models"

// HardLockedPlaceholder replaces the content of hard-locked entries.
const HardLockedPlaceholder = "[This entry is private.]"

// Lock classifies an entry's secrecy.
type Lock int

const (
	LockNone Lock = iota
	LockSoft
	LockHard
)

func (l Lock) String() string {
	switch l {
	case LockSoft:
		return "soft"
	case LockHard:
		return "hard"
	default:
		return "none"
	}
}

// LockOf returns the lock state of e.
func LockOf(e models.ArchiveEntry) Lock {
	switch {
	case !e.IsSecret:
		return LockNone
	case e.SecretPassword == "":
		return LockHard
	default:
		return LockSoft
	}
}

// Decision is what a detail view should do with an entry.
type Decision int

const (
	Reveal Decision = iota
	Placeholder
	Challenge
)

// View is the outcome of evaluating an entry. Content is set only for
// Reveal and Placeholder.
type View struct {
	Decision Decision
	Content  string
}

// Evaluate applies the visibility rule to e. Hard-locked entries always
// yield the placeholder, whatever unlocked says.
func Evaluate(e models.ArchiveEntry, unlocked bool) View {
	switch LockOf(e) {
	case LockNone:
		return View{Decision: Reveal, Content: e.Content}
	case LockHard:
		return View{Decision: Placeholder, Content: HardLockedPlaceholder}
	}
	if unlocked {
		return View{Decision: Reveal, Content: e.Content}
	}
	return View{Decision: Challenge}
}

// Check compares input with the entry password: exact bytes, case-sensitive,
// no trimming. Public entries accept any input.
func Check(e models.ArchiveEntry, input string) error {
	switch LockOf(e) {
	case LockNone:
		return nil
	case LockHard:
		return ErrHardLocked
	}
	if input != e.SecretPassword {
		return ErrIncorrectPassword
	}
	return nil
}

// Unlock is the navigation marker produced by a challenge passed on a list
// view and carried to the detail view of the same entry.
type Unlock struct {
	EntryID string
}

// SubmitFromList runs a challenge opened from a list. On success it returns
// the marker to attach to the detail navigation.
func SubmitFromList(e models.ArchiveEntry, input string) (*Unlock, error) {
	if err := Check(e, input); err != nil {
		return nil, err
	}
	return &Unlock{EntryID: e.ID}, nil
}

// Arrive evaluates e on entering its detail view. A marker for the same
// entry unlocks it; any other marker is ignored.
func Arrive(s Session, e models.ArchiveEntry, marker *Unlock) (Session, View) {
	if s.Unlocked(e.ID) {
		return s, Evaluate(e, true)
	}
	s = s.Navigate()
	if marker != nil && marker.EntryID == e.ID && LockOf(e) == LockSoft {
		s = s.WithUnlocked(e.ID)
	}
	return s, Evaluate(e, s.Unlocked(e.ID))
}

// SubmitOnDetail runs a challenge on an already loaded detail view. On a
// mismatch the returned session equals s.
func SubmitOnDetail(s Session, e models.ArchiveEntry, input string) (Session, View, error) {
	if err := Check(e, input); err != nil {
		return s, Evaluate(e, s.Unlocked(e.ID)), err
	}
	if LockOf(e) == LockSoft {
		s = s.WithUnlocked(e.ID)
	}
	return s, Evaluate(e, s.Unlocked(e.ID)), nil
}
