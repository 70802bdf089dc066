package gate

import "github.com/dmitrijs2005/arcaives/internal/models"

// Policy says how a surface treats hard-locked entries.
type Policy int

const (
	// ExcludeHardLocked drops hard-locked entries (landing shelf).
	ExcludeHardLocked Policy = iota
	// InertHardLocked lists hard-locked entries but makes them unclickable
	// (archive list page).
	InertHardLocked
)

// Item is one row of a public listing.
type Item struct {
	Entry     models.ArchiveEntry
	Lock      Lock
	Clickable bool
}

// Listing applies p to entries, preserving their order.
func Listing(entries []models.ArchiveEntry, p Policy) []Item {
	out := make([]Item, 0, len(entries))
	for _, e := range entries {
		lock := LockOf(e)
		if lock == LockHard && p == ExcludeHardLocked {
			continue
		}
		out = append(out, Item{Entry: e, Lock: lock, Clickable: lock != LockHard})
	}
	return out
}

// PublicMemos splits memos into the visible ones and a count of the secret
// ones. Secret memos have no password escape.
func PublicMemos(memos []models.Memo) (visible []models.Memo, hidden int) {
	visible = make([]models.Memo, 0, len(memos))
	for _, m := range memos {
		if m.IsSecret {
			hidden++
			continue
		}
		visible = append(visible, m)
	}
	return visible, hidden
}
