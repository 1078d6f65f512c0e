package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/ttportal/internal/api"
	"github.com/dtroode/ttportal/internal/mocks"
	"github.com/dtroode/ttportal/internal/model"
	"github.com/dtroode/ttportal/internal/testutil"
)

func TestAuth_Login_Success(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserAPI{}
	sessions := &mocks.SessionManager{}

	users.On("Login", mock.Anything, model.Credentials{Email: "a@b.com", Password: "secret1"}).
		Return(model.User{ID: "u1", Email: "a@b.com", FirstName: "Ada", IsAdmin: true, Token: "tok", Phone: "123"}, nil)
	sessions.On("Start", model.Session{
		Token: "tok",
		User:  model.SessionUser{ID: "u1", Email: "a@b.com", FirstName: "Ada", IsAdmin: true},
	}).Return(nil)

	a := NewAuth(users, sessions, testutil.MakeNoopLogger())

	s, err := a.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "u1", s.UserID())
	sessions.AssertExpectations(t)
}

func TestAuth_Login_InvalidUserData(t *testing.T) {
	tests := []struct {
		name string
		user model.User
	}{
		{"missing id", model.User{Email: "a@b.com", Token: "tok"}},
		{"missing email", model.User{ID: "u1", Token: "tok"}},
		{"missing token", model.User{ID: "u1", Email: "a@b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mocks.UserAPI{}
			sessions := &mocks.SessionManager{}
			users.On("Login", mock.Anything, mock.Anything).Return(tt.user, nil)

			_, err := NewAuth(users, sessions, testutil.MakeNoopLogger()).Login(context.Background(), "a@b.com", "x")
			require.ErrorIs(t, err, ErrInvalidUserData)
			assert.Equal(t, "Invalid user data received from server", err.Error())
			sessions.AssertNotCalled(t, "Start", mock.Anything)
		})
	}
}

func TestAuth_Login_Rejected(t *testing.T) {
	users := &mocks.UserAPI{}
	users.On("Login", mock.Anything, mock.Anything).
		Return(model.User{}, &api.Error{Kind: api.KindServer, Status: 401, Message: "Invalid email or password"})

	_, err := NewAuth(users, &mocks.SessionManager{}, testutil.MakeNoopLogger()).Login(context.Background(), "a@b.com", "bad")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", api.MessageOf(err, "Login failed"))
}

func TestAuth_Register(t *testing.T) {
	users := &mocks.UserAPI{}
	users.On("Register", mock.Anything, mock.Anything).Return("", nil).Once()
	users.On("Register", mock.Anything, mock.Anything).Return("", errors.New("boom")).Once()

	a := NewAuth(users, &mocks.SessionManager{}, testutil.MakeNoopLogger())

	msg, err := a.Register(context.Background(), model.RegistrationPayload{Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "Registration successful", msg)

	_, err = a.Register(context.Background(), model.RegistrationPayload{Email: "a@b.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register")
}

func TestAuth_Logout(t *testing.T) {
	sessions := &mocks.SessionManager{}
	sessions.On("End").Return(nil)

	require.NoError(t, NewAuth(&mocks.UserAPI{}, sessions, testutil.MakeNoopLogger()).Logout())
	sessions.AssertExpectations(t)
}

func TestAuth_UpdateProfile(t *testing.T) {
	current := model.Session{Token: "tok", User: model.SessionUser{ID: "u1", FirstName: "Ada", LastName: "Byron"}}

	t.Run("merges into cached user", func(t *testing.T) {
		users := &mocks.UserAPI{}
		sessions := &mocks.SessionManager{}
		update := model.ProfileUpdate{LastName: "Lovelace", Phone: "123"}

		sessions.On("Current").Return(current, true)
		users.On("UpdateProfile", mock.Anything, update).Return("", nil)
		sessions.On("UpdateUser", model.SessionUser{ID: "u1", FirstName: "Ada", LastName: "Lovelace"}).Return(nil)

		msg, err := NewAuth(users, sessions, testutil.MakeNoopLogger()).UpdateProfile(context.Background(), update)
		require.NoError(t, err)
		assert.Equal(t, "Profile updated successfully", msg)
		sessions.AssertExpectations(t)
	})

	t.Run("requires session", func(t *testing.T) {
		sessions := &mocks.SessionManager{}
		sessions.On("Current").Return(model.Session{}, false)

		_, err := NewAuth(&mocks.UserAPI{}, sessions, testutil.MakeNoopLogger()).UpdateProfile(context.Background(), model.ProfileUpdate{})
		assert.ErrorIs(t, err, model.ErrNoSession)
	})

	t.Run("backend failure keeps cache", func(t *testing.T) {
		users := &mocks.UserAPI{}
		sessions := &mocks.SessionManager{}
		sessions.On("Current").Return(current, true)
		users.On("UpdateProfile", mock.Anything, mock.Anything).Return("", errors.New("boom"))

		_, err := NewAuth(users, sessions, testutil.MakeNoopLogger()).UpdateProfile(context.Background(), model.ProfileUpdate{FirstName: "X"})
		require.Error(t, err)
		sessions.AssertNotCalled(t, "UpdateUser", mock.Anything)
	})
}

func TestAuth_Profile(t *testing.T) {
	users := &mocks.UserAPI{}
	sessions := &mocks.SessionManager{}
	sessions.On("Current").Return(model.Session{Token: "tok"}, true)
	users.On("Profile", mock.Anything).Return(model.User{ID: "u1", ReferralCount: 4}, nil)

	u, err := NewAuth(users, sessions, testutil.MakeNoopLogger()).Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, u.ReferralCount)
}
