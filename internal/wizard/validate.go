package wizard

import "regexp"

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const minPasswordLength = 6

var personalFields = []struct {
	field   Field
	value   func(Draft) string
	message string
}{
	{FieldFirstName, func(d Draft) string { return d.FirstName }, "First name is required"},
	{FieldLastName, func(d Draft) string { return d.LastName }, "Last name is required"},
	{FieldPhone, func(d Draft) string { return d.Phone }, "Phone number is required"},
	{FieldAddress, func(d Draft) string { return d.Address }, "Address is required"},
	{FieldDateOfBirth, func(d Draft) string { return d.DateOfBirth }, "Date of birth is required"},
}

// stepFields are the fields ValidateStep checks for each step.
var stepFields = map[Step][]Field{
	StepAccount:  {FieldEmail, FieldPassword, FieldConfirmPassword},
	StepPersonal: {FieldFirstName, FieldLastName, FieldPhone, FieldAddress, FieldDateOfBirth},
	StepProof:    {FieldRulesAccepted, FieldPaymentProof},
}

// ValidateStep checks the fields owned by step. It returns an empty map
// when the step is complete.
func ValidateStep(step Step, d Draft) Errors {
	errs := Errors{}

	switch step {
	case StepAccount:
		switch {
		case d.Email == "":
			errs[FieldEmail] = "Email is required"
		case !emailPattern.MatchString(d.Email):
			errs[FieldEmail] = "Email is invalid"
		}

		switch {
		case d.Password == "":
			errs[FieldPassword] = "Password is required"
		case len([]rune(d.Password)) < minPasswordLength:
			errs[FieldPassword] = "Password must be at least 6 characters"
		}

		switch {
		case d.ConfirmPassword == "":
			errs[FieldConfirmPassword] = "Please confirm your password"
		case d.ConfirmPassword != d.Password:
			errs[FieldConfirmPassword] = "Passwords do not match"
		}

	case StepPersonal:
		for _, pf := range personalFields {
			if pf.value(d) == "" {
				errs[pf.field] = pf.message
			}
		}

	case StepPayment:
		// bank details are informational only

	case StepProof:
		if !d.RulesAccepted {
			errs[FieldRulesAccepted] = "You must accept the rules to continue"
		}
		if d.PaymentProof == nil {
			errs[FieldPaymentProof] = "Payment proof is required"
		}
	}

	return errs
}
