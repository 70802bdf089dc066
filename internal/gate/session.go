package gate

// Session is the process-local gate state.
//
// Admin is set by a successful admin login and cleared by Logout.
// The unlock marker is scoped to a single entry id; opening any other entry
// or navigating away drops it.
type Session struct {
	Admin    bool
	unlocked string
}

// Unlocked reports whether id was unlocked in the current navigation.
func (s Session) Unlocked(id string) bool {
	return id != "" && s.unlocked == id
}

// WithUnlocked returns a session in which id is unlocked.
func (s Session) WithUnlocked(id string) Session {
	s.unlocked = id
	return s
}

// Navigate returns the session after leaving a detail view.
func (s Session) Navigate() Session {
	s.unlocked = ""
	return s
}

// Logout clears the admin flag.
func (s Session) Logout() Session {
	s.Admin = false
	return s
}
