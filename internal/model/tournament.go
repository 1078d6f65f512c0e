package model

import "time"

// Tournament is a tournament as listed by the backend.
type Tournament struct {
	ID                  string    `json:"_id"`
	Name                string    `json:"name"`
	Location            string    `json:"location,omitempty"`
	StartDate           time.Time `json:"startDate"`
	MaxParticipants     int       `json:"maxParticipants"`
	CurrentParticipants int       `json:"currentParticipants"`
	PrizePool           int       `json:"prizePool"`
}

// TournamentRegistration links a user to a tournament.
type TournamentRegistration struct {
	ID            string             `json:"_id"`
	UserID        string             `json:"userId"`
	Status        RegistrationStatus `json:"status"`
	PaymentStatus PaymentStatus      `json:"paymentStatus"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// MatchStatusScheduled marks a match that has not been played yet.
const MatchStatusScheduled = "scheduled"

// Match is a single tournament match.
type Match struct {
	ID            string    `json:"_id"`
	Player1       string    `json:"player1"`
	Player2       string    `json:"player2"`
	Round         int       `json:"round"`
	ScheduledTime time.Time `json:"scheduledTime"`
	Status        string    `json:"status"`
}

// Involves reports whether userID plays in the match.
func (m Match) Involves(userID string) bool {
	return userID != "" && (m.Player1 == userID || m.Player2 == userID)
}

// BracketPlayer is a populated player reference inside a bracket node.
type BracketPlayer struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// BracketNode is one match slot of a bracket.
type BracketNode struct {
	ID           string         `json:"_id"`
	Round        int            `json:"round"`
	MatchNumber  int            `json:"matchNumber"`
	Player1      *BracketPlayer `json:"player1,omitempty"`
	Player2      *BracketPlayer `json:"player2,omitempty"`
	Winner       string         `json:"winner,omitempty"`
	Player1Score int            `json:"player1Score"`
	Player2Score int            `json:"player2Score"`
	Status       string         `json:"status"`
}

// Bracket is the elimination bracket generated by the backend.
type Bracket struct {
	ID           string        `json:"_id"`
	TournamentID string        `json:"tournamentId"`
	Status       string        `json:"status"`
	CurrentRound int           `json:"currentRound"`
	Nodes        []BracketNode `json:"nodes"`
}

// BracketStats summarizes bracket progress.
type BracketStats struct {
	TotalMatches     int `json:"totalMatches"`
	CompletedMatches int `json:"completedMatches"`
	PendingMatches   int `json:"pendingMatches"`
	TotalRounds      int `json:"totalRounds"`
}

// MatchResult reports the outcome of a bracket match.
type MatchResult struct {
	WinnerID     string `json:"winnerId"`
	Player1Score int    `json:"player1Score"`
	Player2Score int    `json:"player2Score"`
}

// SeedRequest orders players for seeding; empty means random.
type SeedRequest struct {
	SeedOrder []string `json:"seedOrder"`
}
