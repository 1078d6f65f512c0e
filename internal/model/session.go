package model

// Storage keys for client-persisted session state. Both must be present for
// a session to be considered valid.
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
)

// SessionUser is the user profile cached alongside the auth token.
// Sensitive fields are never stored.
type SessionUser struct {
	ID             string `json:"_id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	RegistrationID string `json:"registrationId"`
	ReferralCode   string `json:"referralCode"`
	IsAdmin        bool   `json:"isAdmin"`
}

// Session is the single authenticated session of this client.
type Session struct {
	Token string
	User  SessionUser
}

// UserID returns the backend identifier of the session owner.
func (s Session) UserID() string {
	return s.User.ID
}

// IsAdmin reports whether the session owner has admin rights.
func (s Session) IsAdmin() bool {
	return s.User.IsAdmin
}

// SessionStore persists the session between process runs.
type SessionStore interface {
	Load() (Session, error)
	Save(session Session) error
	Clear() error
}
