package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/ttportal/internal/model"
)

// SessionManager is a mock implementation of model.SessionManager.
type SessionManager struct {
	mock.Mock
}

func (m *SessionManager) Current() (model.Session, bool) {
	args := m.Called()
	return args.Get(0).(model.Session), args.Bool(1)
}

func (m *SessionManager) Token() string {
	return m.Called().String(0)
}

func (m *SessionManager) Invalidate() {
	m.Called()
}

func (m *SessionManager) Start(session model.Session) error {
	return m.Called(session).Error(0)
}

func (m *SessionManager) UpdateUser(user model.SessionUser) error {
	return m.Called(user).Error(0)
}

func (m *SessionManager) End() error {
	return m.Called().Error(0)
}
