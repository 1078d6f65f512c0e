package wizard

import (
	"context"
	"strings"

	"github.com/dtroode/ttportal/internal/api"
	"github.com/dtroode/ttportal/internal/model"
)

// ReferralCheck identifies one issued referral validation.
type ReferralCheck struct {
	Code       string
	generation uint64
}

// Referral returns the validated referral, if any.
func (w *Wizard) Referral() (model.ReferralValidation, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.referral == nil {
		return model.ReferralValidation{}, false
	}
	return *w.referral, true
}

// ValidatingReferral reports whether the latest issued check is still pending.
func (w *Wizard) ValidatingReferral() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight != 0 && w.inFlight == w.generation
}

// BeginReferralCheck issues a new check for the current code. It returns
// false when the code is empty, in which case the referral error is set and
// no check must be sent.
func (w *Wizard) BeginReferralCheck() (ReferralCheck, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	code := strings.TrimSpace(w.draft.ReferralCode)
	if code == "" {
		w.errors[FieldReferralCode] = "Please enter a referral code"
		return ReferralCheck{}, false
	}

	w.generation++
	w.inFlight = w.generation
	return ReferralCheck{Code: code, generation: w.generation}, true
}

// CompleteReferralCheck applies the answer to check. The answer is dropped,
// and false returned, when a newer check was issued or the code changed
// since check was issued.
func (w *Wizard) CompleteReferralCheck(check ReferralCheck, result model.ReferralValidation, err error) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if check.generation != w.generation || check.Code != strings.TrimSpace(w.draft.ReferralCode) || !w.editable() {
		w.logger.Debug("Registration wizard: dropping stale referral response",
			"code", check.Code)
		return false
	}

	w.inFlight = 0
	if err != nil {
		w.referral = nil
		w.errors[FieldReferralCode] = api.MessageOf(err, "Failed to validate referral code")
		return true
	}

	w.referral = &result
	delete(w.errors, FieldReferralCode)
	return true
}

// ValidateReferral checks the current code against the backend and applies
// the answer if it is still current. It reports whether the answer was applied.
func (w *Wizard) ValidateReferral(ctx context.Context) bool {
	check, ok := w.BeginReferralCheck()
	if !ok {
		return false
	}
	result, err := w.validator.ValidateReferral(ctx, check.Code)
	return w.CompleteReferralCheck(check, result, err)
}

// ValidateReferralAsync is ValidateReferral run in the background. The
// channel receives whether the answer was applied.
func (w *Wizard) ValidateReferralAsync(ctx context.Context) <-chan bool {
	done := make(chan bool, 1)

	check, ok := w.BeginReferralCheck()
	if !ok {
		done <- false
		close(done)
		return done
	}

	go func() {
		defer close(done)
		result, err := w.validator.ValidateReferral(ctx, check.Code)
		done <- w.CompleteReferralCheck(check, result, err)
	}()
	return done
}

// StartWithReferral seeds the code from a shared referral link and validates
// it. An empty code is ignored without setting an error.
func (w *Wizard) StartWithReferral(ctx context.Context, code string) bool {
	if strings.TrimSpace(code) == "" {
		return false
	}
	if err := w.Set(FieldReferralCode, code); err != nil {
		return false
	}
	return w.ValidateReferral(ctx)
}
