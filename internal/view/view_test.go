package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/ttportal/internal/cashback"
	"github.com/dtroode/ttportal/internal/mocks"
	"github.com/dtroode/ttportal/internal/model"
	"github.com/dtroode/ttportal/internal/testutil"
)

type staticSession struct {
	session model.Session
	ok      bool
}

func (s staticSession) Current() (model.Session, bool) { return s.session, s.ok }
func (s staticSession) Token() string                  { return s.session.Token }
func (s staticSession) Invalidate()                    {}

func userSession(id string) staticSession {
	return staticSession{
		session: model.Session{
			Token: "tok",
			User:  model.SessionUser{ID: id, RegistrationID: "REG-1", ReferralCode: "CODE1"},
		},
		ok: true,
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  int
	}{
		{name: "past", start: now.Add(-72 * time.Hour), want: 0},
		{name: "now", start: now, want: 0},
		{name: "one hour", start: now.Add(time.Hour), want: 1},
		{name: "exactly two days", start: now.Add(48 * time.Hour), want: 2},
		{name: "two days and a bit", start: now.Add(49 * time.Hour), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.start, now))
		})
	}
}

func TestDashboard_Load(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tournament := model.Tournament{ID: "t1", Name: "Open", StartDate: now.Add(10 * 24 * time.Hour), CurrentParticipants: 12}

	matches := []model.Match{
		{ID: "m0", Player1: "u1", Player2: "x", Status: "completed"},
		{ID: "m1", Player1: "u1", Player2: "a", Status: model.MatchStatusScheduled},
		{ID: "m2", Player1: "b", Player2: "c", Status: model.MatchStatusScheduled},
		{ID: "m3", Player1: "d", Player2: "u1", Status: model.MatchStatusScheduled},
		{ID: "m4", Player1: "u1", Player2: "e", Status: model.MatchStatusScheduled},
		{ID: "m5", Player1: "u1", Player2: "f", Status: model.MatchStatusScheduled},
		{ID: "m6", Player1: "u1", Player2: "g", Status: model.MatchStatusScheduled},
		{ID: "m7", Player1: "u1", Player2: "h", Status: model.MatchStatusScheduled},
	}

	tournaments := new(mocks.TournamentAPI)
	tournaments.On("ListTournaments", mock.Anything).Return([]model.Tournament{tournament}, nil)
	tournaments.On("TournamentRegistrations", mock.Anything, "t1").Return([]model.TournamentRegistration{
		{ID: "r0", UserID: "other", Status: model.RegistrationRejected},
		{ID: "r1", UserID: "u1", Status: model.RegistrationApproved, PaymentStatus: model.PaymentConfirmed},
	}, nil)
	tournaments.On("TournamentMatches", mock.Anything, "t1").Return(matches, nil)

	users := new(mocks.UserAPI)
	users.On("Profile", mock.Anything).Return(model.User{ID: "u1", ReferralCount: 4, CashbackEligible: true, CashbackAmount: 200}, nil)

	d := NewDashboard(tournaments, users, userSession("u1"), testutil.MakeNoopLogger())
	d.now = func() time.Time { return now }

	require.NoError(t, d.Load(context.Background()))
	data := d.Snapshot().Data

	require.NotNil(t, data.Tournament)
	assert.Equal(t, 10, data.DaysUntil)
	assert.Equal(t, 128, data.TotalParticipants)
	assert.Equal(t, 10000, data.PrizePool)
	assert.Equal(t, 12, data.RegisteredParticipants)
	assert.Equal(t, model.RegistrationApproved, data.RegistrationStatus)
	assert.Equal(t, model.PaymentConfirmed, data.PaymentStatus)
	assert.Equal(t, 4, data.ReferralCount)
	assert.True(t, data.CashbackEligible)
	assert.Equal(t, 200, data.CashbackAmount)

	require.Len(t, data.UpcomingMatches, 5)
	assert.Equal(t, "m1", data.UpcomingMatches[0].ID)
	assert.Equal(t, "m3", data.UpcomingMatches[1].ID)
	require.NotNil(t, data.NextMatch)
	assert.Equal(t, "m1", data.NextMatch.ID)
}

func TestDashboard_PendingRegistrationSkipsMatches(t *testing.T) {
	tournaments := new(mocks.TournamentAPI)
	tournaments.On("ListTournaments", mock.Anything).Return([]model.Tournament{{ID: "t1", MaxParticipants: 64, PrizePool: 5000}}, nil)
	tournaments.On("TournamentRegistrations", mock.Anything, "t1").Return(nil, errors.New("not found"))

	users := new(mocks.UserAPI)
	users.On("Profile", mock.Anything).Return(model.User{}, errors.New("offline"))

	d := NewDashboard(tournaments, users, userSession("u1"), testutil.MakeNoopLogger())
	require.NoError(t, d.Load(context.Background()))

	data := d.Snapshot().Data
	assert.Equal(t, 64, data.TotalParticipants)
	assert.Equal(t, 5000, data.PrizePool)
	assert.Equal(t, model.RegistrationPending, data.RegistrationStatus)
	assert.Equal(t, model.PaymentPending, data.PaymentStatus)
	assert.Empty(t, data.UpcomingMatches)
	assert.Nil(t, data.NextMatch)
	tournaments.AssertNotCalled(t, "TournamentMatches", mock.Anything, mock.Anything)
}

func TestDashboard_Failures(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		d := NewDashboard(new(mocks.TournamentAPI), new(mocks.UserAPI), staticSession{}, testutil.MakeNoopLogger())
		assert.ErrorIs(t, d.Load(context.Background()), model.ErrNoSession)
		assert.Equal(t, StatusFailed, d.Snapshot().Status)
	})

	t.Run("tournaments unavailable", func(t *testing.T) {
		tournaments := new(mocks.TournamentAPI)
		tournaments.On("ListTournaments", mock.Anything).Return(nil, errors.New("down"))

		d := NewDashboard(tournaments, new(mocks.UserAPI), userSession("u1"), testutil.MakeNoopLogger())
		require.Error(t, d.Load(context.Background()))
		assert.Equal(t, StatusFailed, d.Snapshot().Status)
	})

	t.Run("no tournaments", func(t *testing.T) {
		tournaments := new(mocks.TournamentAPI)
		tournaments.On("ListTournaments", mock.Anything).Return([]model.Tournament{}, nil)

		d := NewDashboard(tournaments, new(mocks.UserAPI), userSession("u1"), testutil.MakeNoopLogger())
		require.NoError(t, d.Load(context.Background()))
		assert.Nil(t, d.Snapshot().Data.Tournament)
	})
}

func TestStatusView_Load(t *testing.T) {
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	tournaments := new(mocks.TournamentAPI)
	tournaments.On("ListTournaments", mock.Anything).Return([]model.Tournament{{ID: "t1"}}, nil)
	tournaments.On("TournamentRegistrations", mock.Anything, "t1").Return([]model.TournamentRegistration{
		{ID: "r1", UserID: "u1", Status: model.RegistrationApproved, CreatedAt: created},
	}, nil)

	users := new(mocks.UserAPI)
	users.On("Profile", mock.Anything).Return(model.User{ReferralCode: "ABC", ReferralCount: 16}, nil)

	v := NewStatusView(tournaments, users, userSession("u1"), cashback.DefaultTier, 1500, testutil.MakeNoopLogger())
	require.NoError(t, v.Load(context.Background()))

	data := v.Snapshot().Data
	assert.Equal(t, "r1", data.RegistrationID)
	assert.Equal(t, created, data.RegisteredAt)
	assert.Equal(t, model.RegistrationApproved, data.Status)
	assert.Equal(t, model.PaymentPending, data.PaymentStatus)
	assert.Equal(t, "ABC", data.ReferralCode)
	assert.True(t, data.Cashback.Eligible)
	assert.Equal(t, 800, data.Cashback.Amount)
}

func TestStatusView_NoRegistrationFallsBackToSession(t *testing.T) {
	tournaments := new(mocks.TournamentAPI)
	tournaments.On("ListTournaments", mock.Anything).Return([]model.Tournament{{ID: "t1"}}, nil)
	tournaments.On("TournamentRegistrations", mock.Anything, "t1").Return([]model.TournamentRegistration{}, nil)

	users := new(mocks.UserAPI)
	users.On("Profile", mock.Anything).Return(model.User{}, errors.New("offline"))

	v := NewStatusView(tournaments, users, userSession("u1"), cashback.DefaultTier, 1500, testutil.MakeNoopLogger())
	require.NoError(t, v.Load(context.Background()))

	data := v.Snapshot().Data
	assert.Equal(t, "REG-1", data.RegistrationID)
	assert.Equal(t, "CODE1", data.ReferralCode)
	assert.Equal(t, model.RegistrationPending, data.Status)
	assert.False(t, data.Cashback.Eligible)
	assert.Equal(t, 3, data.Cashback.Remaining)
}

func TestReferralLinks(t *testing.T) {
	assert.Equal(t, "https://tt.example/referral/AB12", ShareLink("https://tt.example/", "AB12"))
	assert.Equal(t, "https://tt.example/register?ref=AB12", RegisterLink("https://tt.example", "AB12"))
	assert.Equal(t, "http://x/referral/a%2Fb", ShareLink("http://x", "a/b"))
}

func TestReferralView_Load(t *testing.T) {
	users := new(mocks.UserAPI)
	users.On("ReferralStats", mock.Anything).Return(model.ReferralStats{ReferralCode: "AB12", ReferralCount: 2}, nil)

	v := NewReferralView(users, cashback.DefaultTier, 1500, "https://tt.example", testutil.MakeNoopLogger())
	require.NoError(t, v.Load(context.Background()))

	data := v.Snapshot().Data
	assert.Equal(t, "https://tt.example/referral/AB12", data.ShareLink)
	assert.Equal(t, "https://tt.example/register?ref=AB12", data.RegisterLink)
	assert.Contains(t, data.ShareText, "AB12")
	assert.False(t, data.Cashback.Eligible)
	assert.Equal(t, 1, data.Cashback.Remaining)
	assert.Equal(t, 27, data.Cashback.Segments)
}

func TestReferralView_NoCode(t *testing.T) {
	users := new(mocks.UserAPI)
	users.On("ReferralStats", mock.Anything).Return(model.ReferralStats{}, nil)

	v := NewReferralView(users, cashback.DefaultTier, 1500, "https://tt.example", testutil.MakeNoopLogger())
	require.NoError(t, v.Load(context.Background()))
	assert.Empty(t, v.Snapshot().Data.ShareLink)
}
