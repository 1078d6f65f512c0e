package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
)

var _ model.SessionStore = (*Store)(nil)

// Store persists the session under two storage keys. A session is only
// restored when both keys are present and the token has not expired.
type Store struct {
	storage   model.Storage
	inspector model.TokenInspector
	logger    *logger.Logger
	now       func() time.Time
}

// NewStore creates a new session store.
func NewStore(storage model.Storage, inspector model.TokenInspector, logger *logger.Logger) *Store {
	return &Store{
		storage:   storage,
		inspector: inspector,
		logger:    logger,
		now:       time.Now,
	}
}

// Load restores the persisted session.
// It returns model.ErrNoSession when nothing usable is stored and
// model.ErrSessionExpired when the stored token is past its expiry.
// Tokens that cannot be read as a JWT are kept as opaque; the backend
// rejects them with 401 if they are no longer valid.
// Unusable state is cleared.
func (s *Store) Load() (model.Session, error) {
	token, err := s.storage.Get(model.StorageKeyToken)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Session{}, fmt.Errorf("failed to read token: %w", err)
	}
	rawUser, userErr := s.storage.Get(model.StorageKeyUser)
	if userErr != nil && !errors.Is(userErr, model.ErrNotFound) {
		return model.Session{}, fmt.Errorf("failed to read user: %w", userErr)
	}

	if len(token) == 0 || len(rawUser) == 0 {
		if len(token) != 0 || len(rawUser) != 0 {
			s.logger.Debug("Session store: dropping partial session")
			s.clearQuietly()
		}
		return model.Session{}, model.ErrNoSession
	}

	var user model.SessionUser
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.logger.Warn("Session store: stored user is corrupt, clearing session",
			"error", err.Error())
		s.clearQuietly()
		return model.Session{}, model.ErrNoSession
	}

	session := model.Session{Token: string(token), User: user}

	claims, err := s.inspector.Inspect(session.Token)
	if err != nil {
		s.logger.Debug("Session store: token is not inspectable, keeping it as opaque",
			"user_id", user.ID,
			"error", err.Error())
		return session, nil
	}
	if claims.Expired(s.now()) {
		s.logger.Info("Session store: token expired, clearing session",
			"user_id", user.ID,
			"expired_at", claims.ExpiresAt.Format(time.RFC3339))
		s.clearQuietly()
		return model.Session{}, model.ErrSessionExpired
	}

	return session, nil
}

// Save writes both keys of the session.
func (s *Store) Save(session model.Session) error {
	if session.Token == "" {
		return fmt.Errorf("failed to save session: %w", model.ErrTokenMalformed)
	}

	rawUser, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if err := s.storage.Set(model.StorageKeyToken, []byte(session.Token)); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := s.storage.Set(model.StorageKeyUser, rawUser); err != nil {
		s.clearQuietly()
		return fmt.Errorf("failed to store user: %w", err)
	}

	return nil
}

// Clear removes both keys.
func (s *Store) Clear() error {
	tokenErr := s.storage.Delete(model.StorageKeyToken)
	userErr := s.storage.Delete(model.StorageKeyUser)
	if err := errors.Join(tokenErr, userErr); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Store) clearQuietly() {
	if err := s.Clear(); err != nil {
		s.logger.Error("Session store: failed to clear session",
			"error", err.Error())
	}
}
