package view

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
)

const (
	maxUpcomingMatches     = 5
	defaultMaxParticipants = 128
	defaultPrizePool       = 10000
)

// DashboardData is the participant dashboard.
type DashboardData struct {
	// Tournament is nil when the backend lists no tournaments.
	Tournament             *model.Tournament
	DaysUntil              int
	TotalParticipants      int
	RegisteredParticipants int
	PrizePool              int

	RegistrationStatus model.RegistrationStatus
	PaymentStatus      model.PaymentStatus
	ReferralCount      int
	CashbackEligible   bool
	CashbackAmount     int

	UpcomingMatches []model.Match
	NextMatch       *model.Match
}

// DaysUntil counts whole days from now to start, rounding up and never
// going below zero.
func DaysUntil(start, now time.Time) int {
	days := math.Ceil(start.Sub(now).Hours() / 24)
	return int(math.Max(0, days))
}

// Dashboard loads the participant dashboard.
type Dashboard struct {
	*Query[DashboardData]

	tournaments model.TournamentAPI
	users       model.UserAPI
	session     model.SessionProvider
	logger      *logger.Logger
	now         func() time.Time
}

// NewDashboard creates a dashboard view. Call Load to fetch it.
func NewDashboard(tournaments model.TournamentAPI, users model.UserAPI, session model.SessionProvider, logger *logger.Logger) *Dashboard {
	d := &Dashboard{
		tournaments: tournaments,
		users:       users,
		session:     session,
		logger:      logger,
		now:         time.Now,
	}
	d.Query = NewQuery("dashboard", d.fetch, logger)
	return d
}

func (d *Dashboard) fetch(ctx context.Context) (DashboardData, error) {
	session, ok := d.session.Current()
	if !ok {
		return DashboardData{}, model.ErrNoSession
	}

	list, err := d.tournaments.ListTournaments(ctx)
	if err != nil {
		return DashboardData{}, fmt.Errorf("failed to list tournaments: %w", err)
	}

	data := DashboardData{
		RegistrationStatus: model.RegistrationPending,
		PaymentStatus:      model.PaymentPending,
	}
	if len(list) == 0 {
		return data, nil
	}

	active := list[0]
	data.Tournament = &active
	data.DaysUntil = DaysUntil(active.StartDate, d.now())
	data.TotalParticipants = orDefault(active.MaxParticipants, defaultMaxParticipants)
	data.RegisteredParticipants = active.CurrentParticipants
	data.PrizePool = orDefault(active.PrizePool, defaultPrizePool)

	var (
		reg     *model.TournamentRegistration
		matches []model.Match
		profile *model.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reg = findRegistration(gctx, d.tournaments, d.logger, active.ID, session.UserID())
		if reg == nil || reg.Status != model.RegistrationApproved {
			return nil
		}
		all, err := d.tournaments.TournamentMatches(gctx, active.ID)
		if err != nil {
			d.logger.Debug("Dashboard view: no matches found",
				"tournament_id", active.ID,
				"error", err.Error())
			return nil
		}
		matches = upcomingMatches(all, session.UserID())
		return nil
	})
	g.Go(func() error {
		profile = fetchProfile(gctx, d.users, d.logger)
		return nil
	})
	_ = g.Wait()

	if reg != nil {
		data.RegistrationStatus = orDefault(reg.Status, model.RegistrationPending)
		data.PaymentStatus = orDefault(reg.PaymentStatus, model.PaymentPending)
	}
	if profile != nil {
		data.ReferralCount = profile.ReferralCount
		data.CashbackEligible = profile.CashbackEligible
		data.CashbackAmount = profile.CashbackAmount
	}
	data.UpcomingMatches = matches
	if len(matches) > 0 {
		next := matches[0]
		data.NextMatch = &next
	}

	return data, nil
}

func upcomingMatches(all []model.Match, userID string) []model.Match {
	out := make([]model.Match, 0, maxUpcomingMatches)
	for _, m := range all {
		if len(out) == maxUpcomingMatches {
			break
		}
		if m.Involves(userID) && m.Status == model.MatchStatusScheduled {
			out = append(out, m)
		}
	}
	return out
}

// findRegistration returns the user's registration in a tournament, or nil
// when it is missing or cannot be fetched.
func findRegistration(ctx context.Context, api model.TournamentAPI, logger *logger.Logger, tournamentID, userID string) *model.TournamentRegistration {
	regs, err := api.TournamentRegistrations(ctx, tournamentID)
	if err != nil {
		logger.Debug("View: no registration found for user",
			"tournament_id", tournamentID,
			"error", err.Error())
		return nil
	}
	for i := range regs {
		if regs[i].UserID == userID {
			return &regs[i]
		}
	}
	return nil
}

// fetchProfile returns the user's profile, or nil when it cannot be fetched.
func fetchProfile(ctx context.Context, api model.UserAPI, logger *logger.Logger) *model.User {
	u, err := api.Profile(ctx)
	if err != nil {
		logger.Debug("View: failed to fetch user profile",
			"error", err.Error())
		return nil
	}
	return &u
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
