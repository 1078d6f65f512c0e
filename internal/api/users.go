package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dtroode/ttportal/internal/model"
)

// Login exchanges credentials for a user record carrying a token.
// The backend either wraps the user in data or returns it at the top level.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, pathUsersLogin, creds)
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if len(resp.env.Data) > 0 {
		if err := resp.decode(&user); err != nil {
			return model.User{}, err
		}
		return user, nil
	}

	if err := json.Unmarshal(resp.body, &user); err != nil {
		return model.User{}, &Error{Kind: KindDecode, Status: resp.status, Err: err}
	}
	return user, nil
}

// Register creates a new account. It returns the backend's message.
func (c *Client) Register(ctx context.Context, payload model.RegistrationPayload) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, pathUsersRegister, payload)
	if err != nil {
		return "", err
	}
	return resp.env.Message, nil
}

// Profile returns the profile of the session owner.
func (c *Client) Profile(ctx context.Context) (model.User, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, pathUsersProfile, nil)
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := resp.decode(&user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// UpdateProfile changes the profile of the session owner and returns the backend's message.
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, pathUsersProfile, update)
	if err != nil {
		return "", err
	}
	return resp.env.Message, nil
}

// ListUsers returns every user. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, pathUsers, nil)
	if err != nil {
		return nil, err
	}

	users := []model.User{}
	if err := resp.decode(&users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserStatus changes one status field of a user. Admin only.
func (c *Client) UpdateUserStatus(ctx context.Context, userID string, update model.StatusUpdate) error {
	_, err := c.doJSON(ctx, http.MethodPut, userStatusPath(userID), update)
	return err
}

type validateReferralRequest struct {
	ReferralCode string `json:"referralCode"`
}

// ValidateReferral checks a referral code and returns the resulting discount.
func (c *Client) ValidateReferral(ctx context.Context, code string) (model.ReferralValidation, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, pathValidateReferral, validateReferralRequest{ReferralCode: code})
	if err != nil {
		return model.ReferralValidation{}, err
	}

	var v model.ReferralValidation
	if err := resp.decode(&v); err != nil {
		return model.ReferralValidation{}, err
	}
	return v, nil
}

// ReferralStats returns referral statistics of the session owner.
func (c *Client) ReferralStats(ctx context.Context) (model.ReferralStats, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, pathReferralStats, nil)
	if err != nil {
		return model.ReferralStats{}, err
	}

	var stats model.ReferralStats
	if err := resp.decode(&stats); err != nil {
		return model.ReferralStats{}, err
	}
	return stats, nil
}
