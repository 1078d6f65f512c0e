package api

import "net/url"

const (
	pathUsersLogin       = "/users/login"
	pathUsersRegister    = "/users/register"
	pathUsersProfile     = "/users/profile"
	pathUsers            = "/users"
	pathValidateReferral = "/users/validate-referral"
	pathReferralStats    = "/users/referral-stats"
	pathTournaments      = "/tournaments"
	pathUploadProof      = "/payments/upload-proof"
	pathHealth           = "/health"
)

func userStatusPath(userID string) string {
	return "/users/" + url.PathEscape(userID) + "/status"
}

func tournamentRegistrationsPath(tournamentID string) string {
	return "/tournaments/" + url.PathEscape(tournamentID) + "/registrations"
}

func tournamentMatchesPath(tournamentID string) string {
	return "/tournaments/" + url.PathEscape(tournamentID) + "/matches"
}

func bracketPath(tournamentID string) string {
	return "/brackets/" + url.PathEscape(tournamentID)
}

func bracketStatsPath(tournamentID string) string {
	return bracketPath(tournamentID) + "/stats"
}

func generateBracketPath(tournamentID string) string {
	return "/brackets/generate/" + url.PathEscape(tournamentID)
}

func seedBracketPath(bracketID string) string {
	return "/brackets/seed/" + url.PathEscape(bracketID)
}

func bracketMatchPath(bracketID, nodeID string) string {
	return "/brackets/" + url.PathEscape(bracketID) + "/match/" + url.PathEscape(nodeID)
}
