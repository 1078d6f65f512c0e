package cli

import (
	"context"
	"errors"

	"github.com/dtroode/ttportal/internal/service"
	"github.com/dtroode/ttportal/internal/wizard"
)

type fieldPrompt struct {
	field wizard.Field
	label string
}

var stepPrompts = map[wizard.Step][]fieldPrompt{
	wizard.StepAccount: {
		{wizard.FieldEmail, "Email"},
		{wizard.FieldPassword, "Password"},
		{wizard.FieldConfirmPassword, "Confirm password"},
	},
	wizard.StepPersonal: {
		{wizard.FieldFirstName, "First name"},
		{wizard.FieldLastName, "Last name"},
		{wizard.FieldPhone, "Phone"},
		{wizard.FieldAddress, "Address"},
		{wizard.FieldDateOfBirth, "Date of birth (YYYY-MM-DD)"},
	},
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.flags("register")
	ref := fs.String("ref", "", "referral code from a shared link")
	proofPath := fs.String("proof", "", "payment proof screenshot")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	submitter := service.NewRegistration(a.Auth, a.Payment, a.Logger)
	w := wizard.New(a.Client, submitter, a.Checker, a.Config.RegistrationFee, a.Logger)
	defer w.Close()

	if *ref != "" {
		w.StartWithReferral(ctx, *ref)
		a.printReferral(w)
	}

	for w.Step() < wizard.StepProof {
		step := w.Step()
		a.printf("\nStep %d of 4: %s\n", int(step), step)

		if err := a.fillStep(ctx, w, step, *ref != ""); err != nil {
			return err
		}
		if !w.Next() {
			a.printErrors(w.Errors())
		}
	}

	a.printf("\nStep 4 of 4: %s\n", wizard.StepProof)
	return a.finishRegistration(ctx, w, *proofPath)
}

func (a *App) fillStep(ctx context.Context, w *wizard.Wizard, step wizard.Step, hasRef bool) error {
	if step == wizard.StepPayment {
		return a.fillPayment(ctx, w, hasRef)
	}

	prompts := stepPrompts[step]
	errs := w.Errors()
	retry := false
	for _, p := range prompts {
		if _, failed := errs[p.field]; failed {
			retry = true
		}
	}

	for _, p := range prompts {
		// on retry only the fields that failed validation are asked again
		if _, failed := errs[p.field]; retry && !failed {
			continue
		}
		value, err := a.prompt(p.label)
		if err != nil {
			return err
		}
		if err := w.Set(p.field, value); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) fillPayment(ctx context.Context, w *wizard.Wizard, hasRef bool) error {
	bank := a.Config.Bank
	a.printf("Transfer %s to:\n", pkr(w.AmountDue()))
	a.printf("  Account holder:  %s\n", bank.AccountHolder)
	a.printf("  Account number:  %s\n", bank.AccountNumber)
	a.printf("  Bank:            %s\n", bank.Name)
	a.printf("  IBAN:            %s\n", bank.IBAN)
	for i, line := range bank.Instructions {
		a.printf("  %d. %s\n", i+1, line)
	}
	a.printf("Questions? Call %s or WhatsApp %s\n", bank.ContactPhone, bank.WhatsApp)

	if hasRef {
		return nil
	}

	code, err := a.prompt("Referral code (optional)")
	if err != nil {
		return err
	}
	if code == "" {
		return nil
	}
	if err := w.Set(wizard.FieldReferralCode, code); err != nil {
		return err
	}
	w.ValidateReferral(ctx)
	a.printReferral(w)
	if _, ok := w.Referral(); ok {
		a.printf("Amount to transfer: %s\n", pkr(w.AmountDue()))
	}
	return nil
}

func (a *App) printReferral(w *wizard.Wizard) {
	if result, ok := w.Referral(); ok {
		a.printf("Referral code applied: referred by %s, discount %s\n", result.ReferrerName, pkr(result.Discount))
		return
	}
	if msg, ok := w.Errors()[wizard.FieldReferralCode]; ok {
		a.printf("Referral code: %s\n", msg)
	}
}

func (a *App) finishRegistration(ctx context.Context, w *wizard.Wizard, proofPath string) error {
	for {
		if err := a.fillProof(w, proofPath); err != nil {
			return err
		}
		proofPath = ""

		err := w.Submit(ctx)
		var verrs wizard.Errors
		switch {
		case err == nil:
			receipt := w.Receipt()
			a.printf("\n%s\n", orDefault(receipt.Message, "Registration successful"))
			if receipt.Warning != "" {
				a.printf("Warning: %s\n", receipt.Warning)
			}
			if _, ok := a.Session.Current(); ok {
				a.println()
				return a.status(ctx, nil)
			}
			return nil
		case errors.As(err, &verrs):
			a.printErrors(verrs)
		default:
			a.printf("%s\n", w.SubmitError())
			retry, perr := a.confirm("Try again?")
			if perr != nil {
				return perr
			}
			if !retry {
				return &viewError{msg: w.SubmitError(), err: err}
			}
		}
	}
}

func (a *App) fillProof(w *wizard.Wizard, path string) error {
	for w.Draft().PaymentProof == nil {
		var err error
		if path == "" {
			if path, err = a.prompt("Payment proof file"); err != nil {
				return err
			}
		}
		if err := w.AttachProofFile(path); err != nil {
			a.printf("%s\n", Describe(err))
		}
		path = ""
	}
	a.printf("Attached %s\n", proofSummary(*w.Draft().PaymentProof))

	if w.Draft().RulesAccepted {
		return nil
	}
	accepted, err := a.confirm("I accept the tournament rules")
	if err != nil {
		return err
	}
	return w.SetRulesAccepted(accepted)
}

func (a *App) printErrors(errs wizard.Errors) {
	for _, line := range sortedErrors(errs) {
		a.printf("  %s\n", line)
	}
}

func sortedErrors(errs wizard.Errors) []string {
	order := []wizard.Field{
		wizard.FieldEmail, wizard.FieldPassword, wizard.FieldConfirmPassword,
		wizard.FieldFirstName, wizard.FieldLastName, wizard.FieldPhone, wizard.FieldAddress, wizard.FieldDateOfBirth,
		wizard.FieldReferralCode, wizard.FieldRulesAccepted, wizard.FieldPaymentProof,
	}
	out := make([]string, 0, len(errs))
	for _, f := range order {
		if msg, ok := errs[f]; ok {
			out = append(out, msg)
		}
	}
	return out
}
