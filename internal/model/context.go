package model

// SessionProvider exposes the current session to every consumer that requires
// one. It is passed explicitly instead of being read from global state.
type SessionProvider interface {
	// Current returns the active session, if any.
	Current() (Session, bool)
	// Token returns the bearer token of the active session or an empty string.
	Token() string
	// Invalidate destroys the active session after the backend rejected it.
	Invalidate()
}

// SessionManager is a SessionProvider that can also start and end sessions.
type SessionManager interface {
	SessionProvider
	Start(session Session) error
	UpdateUser(user SessionUser) error
	End() error
}
