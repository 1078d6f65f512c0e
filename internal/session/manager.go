package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
)

var _ model.SessionManager = (*Manager)(nil)

// Manager owns the single session of the process. It restores the session
// from its store on creation and keeps the store in sync on every change.
type Manager struct {
	store  model.SessionStore
	logger *logger.Logger

	mu      sync.RWMutex
	current model.Session
	active  bool
}

// NewManager creates a new Manager and restores any persisted session.
func NewManager(store model.SessionStore, logger *logger.Logger) (*Manager, error) {
	m := &Manager{store: store, logger: logger}

	s, err := store.Load()
	switch {
	case err == nil:
		m.current = s
		m.active = true
	case errors.Is(err, model.ErrNoSession), errors.Is(err, model.ErrSessionExpired):
	default:
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return m, nil
}

// Current returns the active session, if any.
func (m *Manager) Current() (model.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.active
}

// Token returns the bearer token of the active session or an empty string.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.active {
		return ""
	}
	return m.current.Token
}

// Start replaces the active session and persists it.
func (m *Manager) Start(s model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(s); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	m.current = s
	m.active = true
	return nil
}

// UpdateUser replaces the cached profile of the active session.
func (m *Manager) UpdateUser(user model.SessionUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		return model.ErrNoSession
	}

	next := model.Session{Token: m.current.Token, User: user}
	if err := m.store.Save(next); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	m.current = next
	return nil
}

// End destroys the active session.
func (m *Manager) End() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = model.Session{}
	m.active = false
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Invalidate destroys the active session after the backend rejected it.
func (m *Manager) Invalidate() {
	m.mu.RLock()
	wasActive := m.active
	userID := m.current.UserID()
	m.mu.RUnlock()

	if wasActive {
		m.logger.Info("Session manager: session rejected by backend, logging out",
			"user_id", userID)
	}
	if err := m.End(); err != nil {
		m.logger.Error("Session manager: failed to invalidate session",
			"error", err.Error())
	}
}
