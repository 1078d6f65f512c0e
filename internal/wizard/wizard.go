// Package wizard implements the four-step registration flow.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/ttportal/internal/api"
	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
)

// Step is a wizard step, numbered from 1.
type Step int

const (
	StepAccount Step = iota + 1
	StepPersonal
	StepPayment
	StepProof
)

func (s Step) String() string {
	switch s {
	case StepAccount:
		return "Account"
	case StepPersonal:
		return "Personal Information"
	case StepPayment:
		return "Payment Information"
	case StepProof:
		return "Payment Proof"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// State is the lifecycle of the wizard.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSubmitted
	StateFailed
	StateClosed
)

// RedirectStatus is where the user goes after a successful submit.
const RedirectStatus = "status"

var (
	ErrNotLastStep      = errors.New("submit is only possible on the last step")
	ErrAlreadySubmitted = errors.New("registration already submitted")
	ErrSubmitInProgress = errors.New("registration submit in progress")
	ErrClosed           = errors.New("wizard closed")
)

// ReferralValidator checks referral codes against the backend.
type ReferralValidator interface {
	ValidateReferral(ctx context.Context, code string) (model.ReferralValidation, error)
}

// Receipt is the outcome of a successful submit.
type Receipt struct {
	Message string
	// Warning is set when registration succeeded but a follow-up step failed.
	Warning string
}

// Submitter completes a validated draft.
type Submitter interface {
	Submit(ctx context.Context, draft Draft) (Receipt, error)
}

// ProofChecker accepts payment proof files.
type ProofChecker interface {
	Accept(name string, data []byte) (model.ProofFile, error)
	Open(path string) (model.ProofFile, error)
}

// Wizard holds the registration draft and drives it through the steps.
// All methods are safe for concurrent use.
type Wizard struct {
	id        uuid.UUID
	validator ReferralValidator
	submitter Submitter
	checker   ProofChecker
	fee       int
	logger    *logger.Logger

	mu         sync.Mutex
	draft      Draft
	step       Step
	errors     Errors
	state      State
	submitErr  string
	receipt    Receipt
	referral   *model.ReferralValidation
	generation uint64
	inFlight   uint64
}

// New creates a wizard at step 1 with an empty draft.
func New(validator ReferralValidator, submitter Submitter, checker ProofChecker, fee int, logger *logger.Logger) *Wizard {
	id := uuid.New()
	return &Wizard{
		id:        id,
		validator: validator,
		submitter: submitter,
		checker:   checker,
		fee:       fee,
		logger:    logger.With("wizard_id", id.String()),
		draft:     newDraft(),
		step:      StepAccount,
		errors:    Errors{},
	}
}

// ID identifies this wizard instance in logs.
func (w *Wizard) ID() uuid.UUID {
	return w.id
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// State returns the lifecycle state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Draft returns a copy of the draft.
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.clone()
}

// Errors returns a copy of the field errors.
func (w *Wizard) Errors() Errors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errors.clone()
}

// SubmitError returns the message of the last failed submit.
func (w *Wizard) SubmitError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitErr
}

// Receipt returns the outcome of a successful submit.
func (w *Wizard) Receipt() Receipt {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.receipt
}

// Fee returns the base registration fee.
func (w *Wizard) Fee() int {
	return w.fee
}

// AmountDue is the amount to transfer: the discounted amount when a referral
// code was validated, the base fee otherwise.
func (w *Wizard) AmountDue() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.referral != nil {
		return w.referral.FinalAmount
	}
	return w.fee
}

func (w *Wizard) editable() bool {
	return w.state == StateEditing || w.state == StateFailed
}

// Set changes a text field and clears its error.
func (w *Wizard) Set(f Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.editable() {
		return ErrClosed
	}
	if !w.draft.set(f, value) {
		return fmt.Errorf("field %s is not a text field", f)
	}
	delete(w.errors, f)
	if f == FieldReferralCode {
		w.referral = nil
	}
	return nil
}

// SetRulesAccepted records the rules checkbox.
func (w *Wizard) SetRulesAccepted(accepted bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.editable() {
		return ErrClosed
	}
	w.draft.RulesAccepted = accepted
	delete(w.errors, FieldRulesAccepted)
	return nil
}

// AttachProof validates and attaches an in-memory proof file. A rejected
// file leaves the previously attached file in place.
func (w *Wizard) AttachProof(name string, data []byte) error {
	f, err := w.checker.Accept(name, data)
	if err != nil {
		return err
	}
	return w.attach(f)
}

// AttachProofFile validates and attaches a proof file from disk.
func (w *Wizard) AttachProofFile(path string) error {
	f, err := w.checker.Open(path)
	if err != nil {
		return err
	}
	return w.attach(f)
}

func (w *Wizard) attach(f model.ProofFile) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.editable() {
		return ErrClosed
	}
	w.draft.PaymentProof = &f
	delete(w.errors, FieldPaymentProof)
	return nil
}

// Next validates the current step and advances on success. On failure the
// step is unchanged and Errors holds the field messages.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.editable() || w.step >= StepProof {
		return false
	}

	errs := ValidateStep(w.step, w.draft)
	w.setStepErrors(w.step, errs)
	if len(errs) > 0 {
		w.logger.Debug("Registration wizard: step validation failed",
			"step", int(w.step),
			"fields", len(errs))
		return false
	}

	w.step++
	return true
}

// setStepErrors replaces the messages of the fields step validates and
// keeps the rest, such as a referral code error. Callers hold w.mu.
func (w *Wizard) setStepErrors(step Step, errs Errors) {
	for _, f := range stepFields[step] {
		delete(w.errors, f)
	}
	for f, msg := range errs {
		w.errors[f] = msg
	}
}

// Previous goes back one step without validating. It never goes below step 1.
func (w *Wizard) Previous() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.editable() {
		return
	}
	if w.step > StepAccount {
		w.step--
	}
}

// Submit validates the last step and hands the draft to the submitter.
// Validation failures are returned as Errors without any network call.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	switch w.state {
	case StateSubmitted:
		w.mu.Unlock()
		return ErrAlreadySubmitted
	case StateSubmitting:
		w.mu.Unlock()
		return ErrSubmitInProgress
	case StateClosed:
		w.mu.Unlock()
		return ErrClosed
	}
	if w.step != StepProof {
		w.mu.Unlock()
		return ErrNotLastStep
	}

	errs := ValidateStep(StepProof, w.draft)
	w.setStepErrors(StepProof, errs)
	if len(errs) > 0 {
		w.mu.Unlock()
		return errs.clone()
	}

	w.state = StateSubmitting
	w.submitErr = ""
	draft := w.draft.clone()
	w.mu.Unlock()

	w.logger.Info("Registration wizard: submitting registration",
		"email", draft.Email,
		"has_referral", draft.ReferralCode != "")

	receipt, err := w.submitter.Submit(ctx, draft)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateClosed {
		return ErrClosed
	}
	if err != nil {
		w.state = StateFailed
		w.submitErr = api.MessageOf(err, "Registration failed. Please try again.")
		w.logger.Error("Registration wizard: submit failed",
			"email", draft.Email,
			"error", err.Error())
		return fmt.Errorf("failed to submit registration: %w", err)
	}

	w.state = StateSubmitted
	w.receipt = receipt
	w.draft = newDraft()
	w.referral = nil
	w.generation++
	return nil
}

// Close discards the draft. Pending referral responses are dropped.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = StateClosed
	w.draft = newDraft()
	w.referral = nil
	w.generation++
}
