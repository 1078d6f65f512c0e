package view

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dtroode/ttportal/internal/cashback"
	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
)

// StatusData is the registration status screen.
type StatusData struct {
	Tournament     *model.Tournament
	RegistrationID string
	RegisteredAt   time.Time
	Status         model.RegistrationStatus
	PaymentStatus  model.PaymentStatus
	ReferralCode   string
	Cashback       CashbackProgress
}

// StatusView loads the registration status of the session owner.
type StatusView struct {
	*Query[StatusData]

	tournaments model.TournamentAPI
	users       model.UserAPI
	session     model.SessionProvider
	tier        cashback.Tier
	fee         int
	logger      *logger.Logger
}

// NewStatusView creates a status view. Call Load to fetch it.
func NewStatusView(
	tournaments model.TournamentAPI,
	users model.UserAPI,
	session model.SessionProvider,
	tier cashback.Tier,
	fee int,
	logger *logger.Logger,
) *StatusView {
	v := &StatusView{
		tournaments: tournaments,
		users:       users,
		session:     session,
		tier:        tier,
		fee:         fee,
		logger:      logger,
	}
	v.Query = NewQuery("status", v.fetch, logger)
	return v
}

func (v *StatusView) fetch(ctx context.Context) (StatusData, error) {
	session, ok := v.session.Current()
	if !ok {
		return StatusData{}, model.ErrNoSession
	}

	list, err := v.tournaments.ListTournaments(ctx)
	if err != nil {
		return StatusData{}, fmt.Errorf("failed to list tournaments: %w", err)
	}

	data := StatusData{
		RegistrationID: session.User.RegistrationID,
		Status:         model.RegistrationPending,
		PaymentStatus:  model.PaymentPending,
		ReferralCode:   session.User.ReferralCode,
		Cashback:       NewCashbackProgress(v.tier, 0, v.fee),
	}
	if len(list) == 0 {
		return data, nil
	}

	active := list[0]
	data.Tournament = &active

	var (
		reg     *model.TournamentRegistration
		profile *model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reg = findRegistration(gctx, v.tournaments, v.logger, active.ID, session.UserID())
		return nil
	})
	g.Go(func() error {
		profile = fetchProfile(gctx, v.users, v.logger)
		return nil
	})
	_ = g.Wait()

	if reg != nil {
		data.RegistrationID = orDefault(reg.ID, data.RegistrationID)
		data.RegisteredAt = reg.CreatedAt
		data.Status = orDefault(reg.Status, model.RegistrationPending)
		data.PaymentStatus = orDefault(reg.PaymentStatus, model.PaymentPending)
	}
	if profile != nil {
		data.ReferralCode = orDefault(profile.ReferralCode, data.ReferralCode)
		data.Cashback = NewCashbackProgress(v.tier, profile.ReferralCount, v.fee)
	}

	return data, nil
}
