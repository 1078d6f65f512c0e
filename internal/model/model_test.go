package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusUpdate_MarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		update StatusUpdate
		want   string
	}{
		{"registration", StatusUpdate{Field: FieldRegistrationStatus, Value: "approved"}, `{"registrationStatus":"approved"}`},
		{"payment", StatusUpdate{Field: FieldPaymentStatus, Value: "confirmed"}, `{"paymentStatus":"confirmed"}`},
		{"cashback", StatusUpdate{Field: FieldCashbackStatus, Value: "rejected"}, `{"cashbackStatus":"rejected"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.update)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	assert.Equal(t, "N/A", User{}.FullName())
}

func TestUser_SessionUser(t *testing.T) {
	u := User{ID: "u1", Email: "a@b.com", ReferralCode: "REF1", IsAdmin: true, Token: "secret", Phone: "123"}
	su := u.SessionUser()

	assert.Equal(t, SessionUser{ID: "u1", Email: "a@b.com", ReferralCode: "REF1", IsAdmin: true}, su)
}

func TestTokenClaims_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, TokenClaims{}.Expired(now))
	assert.False(t, TokenClaims{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, TokenClaims{ExpiresAt: now}.Expired(now))
	assert.True(t, TokenClaims{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
}

func TestMatch_Involves(t *testing.T) {
	m := Match{Player1: "a", Player2: "b"}

	assert.True(t, m.Involves("a"))
	assert.True(t, m.Involves("b"))
	assert.False(t, m.Involves("c"))
	assert.False(t, Match{}.Involves(""))
}
