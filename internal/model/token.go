package model

import "time"

// TokenClaims holds the claims the client can read from a bearer token.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
// Tokens without an exp claim never expire on the client side.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// TokenInspector reads claims from a bearer token issued by the backend.
type TokenInspector interface {
	Inspect(token string) (TokenClaims, error)
}
