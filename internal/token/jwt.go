package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/ttportal/internal/model"
)

// JWT implements TokenInspector for tokens issued by the backend.
//
// The client never holds the signing secret, so the signature is not
// verified here; the backend remains the authority and answers 401 for
// tampered tokens. Inspection only lets the client drop a session whose
// token has visibly expired before making a doomed request.
type JWT struct {
	parser *jwt.Parser
}

var _ model.TokenInspector = (*JWT)(nil)

// NewJWT creates a new JWT inspector.
func NewJWT() *JWT {
	return &JWT{parser: jwt.NewParser()}
}

// subjectClaims lists the claim names the backend has used for the user ID.
var subjectClaims = []string{"sub", "id", "userId", "user_id"}

// Inspect extracts the subject and expiry from a token.
func (j *JWT) Inspect(tokenString string) (model.TokenClaims, error) {
	if tokenString == "" {
		return model.TokenClaims{}, fmt.Errorf("empty token: %w", model.ErrTokenMalformed)
	}

	claims := jwt.MapClaims{}
	if _, _, err := j.parser.ParseUnverified(tokenString, claims); err != nil {
		return model.TokenClaims{}, fmt.Errorf("failed to parse token: %w", errors.Join(model.ErrTokenMalformed, err))
	}

	var out model.TokenClaims

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("failed to read exp claim: %w", errors.Join(model.ErrTokenMalformed, err))
	}
	if exp != nil {
		out.ExpiresAt = exp.Time
	}

	for _, name := range subjectClaims {
		if v, ok := claims[name].(string); ok && v != "" {
			out.Subject = v
			break
		}
	}

	return out, nil
}
