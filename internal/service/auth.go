package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
)

// ErrInvalidUserData is returned when a login answer lacks the user identity.
var ErrInvalidUserData = errors.New("Invalid user data received from server")

type Auth struct {
	users    model.UserAPI
	sessions model.SessionManager
	logger   *logger.Logger
}

func NewAuth(users model.UserAPI, sessions model.SessionManager, logger *logger.Logger) *Auth {
	return &Auth{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Login authenticates against the backend and starts a session.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	a.logger.Debug("Auth service: logging in",
		"email", email)

	user, err := a.users.Login(ctx, model.Credentials{Email: email, Password: password})
	if err != nil {
		a.logger.Info("Auth service: login rejected",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to login: %w", err)
	}

	if user.ID == "" || user.Email == "" || user.Token == "" {
		a.logger.Error("Auth service: login answer misses user identity",
			"email", email,
			"has_id", user.ID != "",
			"has_token", user.Token != "")
		return model.Session{}, ErrInvalidUserData
	}

	session := model.Session{Token: user.Token, User: user.SessionUser()}
	if err := a.sessions.Start(session); err != nil {
		a.logger.Error("Auth service: failed to store session",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to store session: %w", err)
	}

	a.logger.Info("Auth service: logged in",
		"user_id", user.ID,
		"is_admin", user.IsAdmin)

	return session, nil
}

// Register creates an account. It does not start a session.
func (a *Auth) Register(ctx context.Context, payload model.RegistrationPayload) (string, error) {
	a.logger.Debug("Auth service: registering user",
		"email", payload.Email)

	msg, err := a.users.Register(ctx, payload)
	if err != nil {
		a.logger.Info("Auth service: registration rejected",
			"email", payload.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to register: %w", err)
	}

	if msg == "" {
		msg = "Registration successful"
	}
	a.logger.Info("Auth service: user registered",
		"email", payload.Email)

	return msg, nil
}

// Logout destroys the local session.
func (a *Auth) Logout() error {
	if err := a.sessions.End(); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	a.logger.Info("Auth service: logged out")
	return nil
}

// Current returns the active session.
func (a *Auth) Current() (model.Session, error) {
	s, ok := a.sessions.Current()
	if !ok {
		return model.Session{}, model.ErrNoSession
	}
	return s, nil
}

// Profile fetches the full profile of the session owner.
func (a *Auth) Profile(ctx context.Context) (model.User, error) {
	if _, err := a.Current(); err != nil {
		return model.User{}, err
	}

	user, err := a.users.Profile(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

// UpdateProfile sends the changed fields and merges them into the cached user.
func (a *Auth) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (string, error) {
	session, err := a.Current()
	if err != nil {
		return "", err
	}

	msg, err := a.users.UpdateProfile(ctx, update)
	if err != nil {
		a.logger.Error("Auth service: failed to update profile",
			"user_id", session.UserID(),
			"error", err.Error())
		return "", fmt.Errorf("failed to update profile: %w", err)
	}

	user := session.User
	if update.FirstName != "" {
		user.FirstName = update.FirstName
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
	if err := a.sessions.UpdateUser(user); err != nil {
		a.logger.Error("Auth service: failed to update cached user",
			"user_id", session.UserID(),
			"error", err.Error())
		return "", fmt.Errorf("failed to update cached user: %w", err)
	}

	if msg == "" {
		msg = "Profile updated successfully"
	}
	return msg, nil
}
