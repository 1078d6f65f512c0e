package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/ttportal/internal/model"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func TestJWT_Inspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	tests := []struct {
		name        string
		claims      jwt.MapClaims
		wantSubject string
		wantExp     time.Time
	}{
		{
			name:        "express style id claim",
			claims:      jwt.MapClaims{"id": "64f0c1", "exp": exp.Unix()},
			wantSubject: "64f0c1",
			wantExp:     exp,
		},
		{
			name:        "registered subject",
			claims:      jwt.MapClaims{"sub": "u-1", "exp": exp.Unix()},
			wantSubject: "u-1",
			wantExp:     exp,
		},
		{
			name:        "no expiry",
			claims:      jwt.MapClaims{"userId": "u-2"},
			wantSubject: "u-2",
		},
	}

	j := NewJWT()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := j.Inspect(sign(t, tt.claims))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, got.Subject)
			assert.True(t, tt.wantExp.Equal(got.ExpiresAt), "exp %v != %v", got.ExpiresAt, tt.wantExp)
		})
	}
}

func TestJWT_Inspect_Expired(t *testing.T) {
	j := NewJWT()
	tok := sign(t, jwt.MapClaims{"id": "u", "exp": time.Now().Add(-time.Hour).Unix()})

	claims, err := j.Inspect(tok)
	require.NoError(t, err)
	assert.True(t, claims.Expired(time.Now()))
}

func TestJWT_Inspect_Malformed(t *testing.T) {
	j := NewJWT()

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := j.Inspect(tok)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrTokenMalformed)
	}
}
