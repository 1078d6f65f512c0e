package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dtroode/ttportal/internal/cashback"
	"github.com/dtroode/ttportal/internal/config"
	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
)

var (
	ErrNotAdmin = errors.New("admin access required")
	ErrInFlight = errors.New("an update for this user is already in progress")
)

// FilterAll disables the status filter.
const FilterAll = "all"

// RegistrationRow is one user in the registrations table.
type RegistrationRow struct {
	ID            string
	Name          string
	Email         string
	Status        model.RegistrationStatus
	PaymentStatus model.PaymentStatus
	RegisteredAt  time.Time
	ReferralCode  string
}

// CashbackRow is one user in the cashback table.
type CashbackRow struct {
	ID            string
	Name          string
	Email         string
	AccountNumber string
	BankName      string
	ReferralCount int
	Amount        int
	Status        model.CashbackStatus
	RegisteredAt  time.Time
	ReferralCode  string
}

// AdminStats are the totals shown above the tables.
type AdminStats struct {
	TotalRegistrations int
	TotalCashback      int
	PendingCashback    int
	ApprovedCashback   int
}

// AdminData is the admin portal snapshot.
type AdminData struct {
	Registrations []RegistrationRow
	Cashbacks     []CashbackRow
	Stats         AdminStats
}

// Filter narrows the admin tables.
type Filter struct {
	// Search matches name, email or referral code, case-insensitively.
	Search string
	// Status is FilterAll or a status value.
	Status string
}

func (f Filter) match(status, name, email, code string) bool {
	if f.Status != "" && f.Status != FilterAll && f.Status != status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), q) ||
		strings.Contains(strings.ToLower(email), q) ||
		strings.Contains(strings.ToLower(code), q)
}

// FilterRegistrations returns the registration rows matching f.
func (d AdminData) FilterRegistrations(f Filter) []RegistrationRow {
	out := make([]RegistrationRow, 0, len(d.Registrations))
	for _, r := range d.Registrations {
		if f.match(string(r.Status), r.Name, r.Email, r.ReferralCode) {
			out = append(out, r)
		}
	}
	return out
}

// FilterCashbacks returns the cashback rows matching f.
func (d AdminData) FilterCashbacks(f Filter) []CashbackRow {
	out := make([]CashbackRow, 0, len(d.Cashbacks))
	for _, r := range d.Cashbacks {
		if f.match(string(r.Status), r.Name, r.Email, r.ReferralCode) {
			out = append(out, r)
		}
	}
	return out
}

// BuildAdminData maps backend users to the admin tables.
func BuildAdminData(users []model.User, tier cashback.Tier) AdminData {
	data := AdminData{
		Registrations: make([]RegistrationRow, 0, len(users)),
		Cashbacks:     []CashbackRow{},
	}

	for _, u := range users {
		code := orDefault(u.ReferralCode, "N/A")
		data.Registrations = append(data.Registrations, RegistrationRow{
			ID:            u.ID,
			Name:          u.FullName(),
			Email:         u.Email,
			Status:        orDefault(u.RegistrationStatus, model.RegistrationPending),
			PaymentStatus: orDefault(u.PaymentStatus, model.PaymentPending),
			RegisteredAt:  u.CreatedAt,
			ReferralCode:  code,
		})

		if !tier.IsEligible(u.ReferralCount) {
			continue
		}
		row := CashbackRow{
			ID:            u.ID,
			Name:          u.FullName(),
			Email:         u.Email,
			AccountNumber: orDefault(u.AccountNumber, "N/A"),
			BankName:      orDefault(u.BankName, "N/A"),
			ReferralCount: u.ReferralCount,
			Amount:        tier.Amount(u.ReferralCount),
			Status:        orDefault(u.CashbackStatus, model.CashbackPending),
			RegisteredAt:  u.CreatedAt,
			ReferralCode:  code,
		}
		data.Cashbacks = append(data.Cashbacks, row)

		data.Stats.TotalCashback += row.Amount
		switch row.Status {
		case model.CashbackPending:
			data.Stats.PendingCashback += row.Amount
		case model.CashbackApproved:
			data.Stats.ApprovedCashback += row.Amount
		}
	}
	data.Stats.TotalRegistrations = len(users)

	return data
}

// Action is an admin mutation of one user.
type Action string

const (
	ActionApprove         Action = "approve"
	ActionReject          Action = "reject"
	ActionConfirmPayment  Action = "confirm-payment"
	ActionApproveCashback Action = "approve-cashback"
	ActionRejectCashback  Action = "reject-cashback"
)

// Actions lists every admin action.
var Actions = []Action{ActionApprove, ActionReject, ActionConfirmPayment, ActionApproveCashback, ActionRejectCashback}

// ParseAction resolves an action name.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown admin action %q", s)
}

// Update is the status change the action sends.
func (a Action) Update() model.StatusUpdate {
	switch a {
	case ActionApprove:
		return model.StatusUpdate{Field: model.FieldRegistrationStatus, Value: string(model.RegistrationApproved)}
	case ActionReject:
		return model.StatusUpdate{Field: model.FieldRegistrationStatus, Value: string(model.RegistrationRejected)}
	case ActionConfirmPayment:
		return model.StatusUpdate{Field: model.FieldPaymentStatus, Value: string(model.PaymentConfirmed)}
	case ActionApproveCashback:
		return model.StatusUpdate{Field: model.FieldCashbackStatus, Value: string(model.CashbackApproved)}
	case ActionRejectCashback:
		return model.StatusUpdate{Field: model.FieldCashbackStatus, Value: string(model.CashbackRejected)}
	}
	return model.StatusUpdate{}
}

func (a Action) successMessage() string {
	switch a.Update().Field {
	case model.FieldRegistrationStatus:
		return "Registration status updated successfully!"
	case model.FieldPaymentStatus:
		return "Payment status updated successfully!"
	default:
		return "User status updated successfully!"
	}
}

func (a Action) failureMessage() string {
	switch a.Update().Field {
	case model.FieldRegistrationStatus:
		return "Failed to update registration status"
	case model.FieldPaymentStatus:
		return "Failed to update payment status"
	default:
		return "Failed to update user status"
	}
}

// AdminList is the admin portal: user tables, per-row actions and a
// periodic refresh.
type AdminList struct {
	*Query[AdminData]

	users    model.UserAPI
	session  model.SessionProvider
	tier     cashback.Tier
	repeater *Repeater
	flash    *Flash
	logger   *logger.Logger

	mu        sync.Mutex
	inFlight  map[string]struct{}
	actionErr string
	closed    bool
}

// NewAdminList creates the admin portal view. Call Load, then Watch to keep
// it fresh.
func NewAdminList(users model.UserAPI, session model.SessionProvider, tier cashback.Tier, cfg config.Admin, logger *logger.Logger) *AdminList {
	a := &AdminList{
		users:    users,
		session:  session,
		tier:     tier,
		flash:    NewFlash(cfg.FlashDuration),
		logger:   logger,
		inFlight: map[string]struct{}{},
	}
	a.Query = NewQuery("admin users", a.fetch, logger)
	a.repeater = NewRepeater(cfg.RefreshInterval, func(ctx context.Context) {
		_ = a.Refresh(ctx)
	})
	return a
}

func (a *AdminList) fetch(ctx context.Context) (AdminData, error) {
	s, ok := a.session.Current()
	if !ok {
		return AdminData{}, model.ErrNoSession
	}
	if !s.IsAdmin() {
		return AdminData{}, ErrNotAdmin
	}

	users, err := a.users.ListUsers(ctx)
	if err != nil {
		return AdminData{}, fmt.Errorf("failed to list users: %w", err)
	}
	return BuildAdminData(users, a.tier), nil
}

// Watch starts the periodic refresh. It stops on Close or when ctx ends.
// After Close it does nothing.
func (a *AdminList) Watch(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.repeater.Start(ctx)
}

func (a *AdminList) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// Apply runs action on a user. The row is marked in flight until the call
// and the following re-fetch finish, whatever the outcome. If the view is
// closed while the call runs, Apply returns ErrClosed and leaves the flash
// and action error untouched.
func (a *AdminList) Apply(ctx context.Context, userID string, action Action) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	if _, busy := a.inFlight[userID]; busy {
		a.mu.Unlock()
		return ErrInFlight
	}
	a.inFlight[userID] = struct{}{}
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		delete(a.inFlight, userID)
		a.mu.Unlock()
	}()

	a.logger.Info("Admin view: updating user status",
		"user_id", userID,
		"action", string(action))

	err := a.users.UpdateUserStatus(ctx, userID, action.Update())
	if a.isClosed() {
		a.logger.Debug("Admin view: closed during update, dropping outcome",
			"user_id", userID,
			"action", string(action))
		return ErrClosed
	}
	if err != nil {
		a.mu.Lock()
		a.actionErr = action.failureMessage()
		a.mu.Unlock()
		a.logger.Error("Admin view: failed to update user status",
			"user_id", userID,
			"action", string(action),
			"error", err.Error())
		return fmt.Errorf("failed to apply %s: %w", action, err)
	}

	_ = a.Refresh(ctx)

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	a.actionErr = ""
	a.mu.Unlock()
	a.flash.Show(action.successMessage())
	return nil
}

// InFlight reports whether an action on userID is running.
func (a *AdminList) InFlight(userID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.inFlight[userID]
	return ok
}

// RegistrationActionEnabled reports whether action can be used on row.
func (a *AdminList) RegistrationActionEnabled(row RegistrationRow, action Action) bool {
	if a.InFlight(row.ID) {
		return false
	}
	switch action {
	case ActionApprove:
		return row.Status != model.RegistrationApproved
	case ActionReject:
		return row.Status != model.RegistrationRejected
	case ActionConfirmPayment:
		return row.PaymentStatus != model.PaymentConfirmed
	}
	return false
}

// CashbackActionEnabled reports whether action can be used on row.
func (a *AdminList) CashbackActionEnabled(row CashbackRow, action Action) bool {
	if a.InFlight(row.ID) {
		return false
	}
	switch action {
	case ActionApproveCashback:
		return row.Status != model.CashbackApproved
	case ActionRejectCashback:
		return row.Status != model.CashbackRejected
	}
	return false
}

// ActionError is the message of the last failed action.
func (a *AdminList) ActionError() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.actionErr
}

// Flash is the success message of the last action, cleared after a few seconds.
func (a *AdminList) Flash() string {
	return a.flash.Message()
}

// Close stops the refresh and drops any pending result.
func (a *AdminList) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	a.repeater.Stop()
	a.flash.Stop()
	a.Query.Close()
}
