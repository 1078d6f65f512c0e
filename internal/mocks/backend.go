// Package mocks contains testify mocks of the model interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/ttportal/internal/model"
)

// UserAPI is a mock implementation of model.UserAPI.
type UserAPI struct {
	mock.Mock
}

func (m *UserAPI) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserAPI) Register(ctx context.Context, payload model.RegistrationPayload) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func (m *UserAPI) Profile(ctx context.Context) (model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserAPI) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (string, error) {
	args := m.Called(ctx, update)
	return args.String(0), args.Error(1)
}

func (m *UserAPI) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserAPI) UpdateUserStatus(ctx context.Context, userID string, update model.StatusUpdate) error {
	return m.Called(ctx, userID, update).Error(0)
}

func (m *UserAPI) ValidateReferral(ctx context.Context, code string) (model.ReferralValidation, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(model.ReferralValidation), args.Error(1)
}

func (m *UserAPI) ReferralStats(ctx context.Context) (model.ReferralStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ReferralStats), args.Error(1)
}

// TournamentAPI is a mock implementation of model.TournamentAPI.
type TournamentAPI struct {
	mock.Mock
}

func (m *TournamentAPI) ListTournaments(ctx context.Context) ([]model.Tournament, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]model.Tournament)
	return t, args.Error(1)
}

func (m *TournamentAPI) TournamentRegistrations(ctx context.Context, tournamentID string) ([]model.TournamentRegistration, error) {
	args := m.Called(ctx, tournamentID)
	r, _ := args.Get(0).([]model.TournamentRegistration)
	return r, args.Error(1)
}

func (m *TournamentAPI) TournamentMatches(ctx context.Context, tournamentID string) ([]model.Match, error) {
	args := m.Called(ctx, tournamentID)
	ms, _ := args.Get(0).([]model.Match)
	return ms, args.Error(1)
}

// PaymentAPI is a mock implementation of model.PaymentAPI.
type PaymentAPI struct {
	mock.Mock
}

func (m *PaymentAPI) UploadPaymentProof(ctx context.Context, file model.ProofFile, tournamentID string) (model.ProofUpload, error) {
	args := m.Called(ctx, file, tournamentID)
	return args.Get(0).(model.ProofUpload), args.Error(1)
}
