package api

import (
	"context"
	"net/http"

	"github.com/dtroode/ttportal/internal/model"
)

func (c *Client) bracketCall(ctx context.Context, method, path string, in any) (model.Bracket, error) {
	resp, err := c.doJSON(ctx, method, path, in)
	if err != nil {
		return model.Bracket{}, err
	}

	var b model.Bracket
	if err := resp.decode(&b); err != nil {
		return model.Bracket{}, err
	}
	return b, nil
}

// Bracket returns the bracket of a tournament.
func (c *Client) Bracket(ctx context.Context, tournamentID string) (model.Bracket, error) {
	return c.bracketCall(ctx, http.MethodGet, bracketPath(tournamentID), nil)
}

// BracketStats returns progress counters of a tournament bracket.
func (c *Client) BracketStats(ctx context.Context, tournamentID string) (model.BracketStats, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, bracketStatsPath(tournamentID), nil)
	if err != nil {
		return model.BracketStats{}, err
	}

	var stats model.BracketStats
	if err := resp.decode(&stats); err != nil {
		return model.BracketStats{}, err
	}
	return stats, nil
}

// GenerateBracket asks the backend to build the bracket of a tournament.
func (c *Client) GenerateBracket(ctx context.Context, tournamentID string) (model.Bracket, error) {
	return c.bracketCall(ctx, http.MethodPost, generateBracketPath(tournamentID), nil)
}

// SeedBracket places players into the first round.
func (c *Client) SeedBracket(ctx context.Context, bracketID string, req model.SeedRequest) (model.Bracket, error) {
	if req.SeedOrder == nil {
		req.SeedOrder = []string{}
	}
	return c.bracketCall(ctx, http.MethodPost, seedBracketPath(bracketID), req)
}

// UpdateBracketMatch records the result of a bracket match.
func (c *Client) UpdateBracketMatch(ctx context.Context, bracketID, nodeID string, result model.MatchResult) (model.Bracket, error) {
	return c.bracketCall(ctx, http.MethodPut, bracketMatchPath(bracketID, nodeID), result)
}
