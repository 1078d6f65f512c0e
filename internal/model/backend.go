package model

import "context"

// UserAPI is the users part of the backend.
type UserAPI interface {
	Login(ctx context.Context, creds Credentials) (User, error)
	Register(ctx context.Context, payload RegistrationPayload) (string, error)
	Profile(ctx context.Context) (User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (string, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUserStatus(ctx context.Context, userID string, update StatusUpdate) error
	ValidateReferral(ctx context.Context, code string) (ReferralValidation, error)
	ReferralStats(ctx context.Context) (ReferralStats, error)
}

// TournamentAPI is the tournaments part of the backend.
type TournamentAPI interface {
	ListTournaments(ctx context.Context) ([]Tournament, error)
	TournamentRegistrations(ctx context.Context, tournamentID string) ([]TournamentRegistration, error)
	TournamentMatches(ctx context.Context, tournamentID string) ([]Match, error)
}

// PaymentAPI is the payments part of the backend.
type PaymentAPI interface {
	UploadPaymentProof(ctx context.Context, file ProofFile, tournamentID string) (ProofUpload, error)
}

// BracketAPI is the brackets part of the backend.
type BracketAPI interface {
	Bracket(ctx context.Context, tournamentID string) (Bracket, error)
	BracketStats(ctx context.Context, tournamentID string) (BracketStats, error)
	GenerateBracket(ctx context.Context, tournamentID string) (Bracket, error)
	SeedBracket(ctx context.Context, bracketID string, req SeedRequest) (Bracket, error)
	UpdateBracketMatch(ctx context.Context, bracketID, nodeID string, result MatchResult) (Bracket, error)
}
