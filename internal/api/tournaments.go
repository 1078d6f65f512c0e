package api

import (
	"context"
	"net/http"

	"github.com/dtroode/ttportal/internal/model"
)

// ListTournaments returns all tournaments. The first one is the active tournament.
func (c *Client) ListTournaments(ctx context.Context) ([]model.Tournament, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, pathTournaments, nil)
	if err != nil {
		return nil, err
	}

	tournaments := []model.Tournament{}
	if err := resp.decode(&tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

// TournamentRegistrations returns the registrations of a tournament.
func (c *Client) TournamentRegistrations(ctx context.Context, tournamentID string) ([]model.TournamentRegistration, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, tournamentRegistrationsPath(tournamentID), nil)
	if err != nil {
		return nil, err
	}

	regs := []model.TournamentRegistration{}
	if err := resp.decode(&regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// TournamentMatches returns the matches of a tournament.
func (c *Client) TournamentMatches(ctx context.Context, tournamentID string) ([]model.Match, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, tournamentMatchesPath(tournamentID), nil)
	if err != nil {
		return nil, err
	}

	matches := []model.Match{}
	if err := resp.decode(&matches); err != nil {
		return nil, err
	}
	return matches, nil
}
