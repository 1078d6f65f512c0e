package wizard

import (
	"sort"
	"strings"

	"github.com/dtroode/ttportal/internal/model"
)

// Field names a draft field. Values match the backend JSON names.
type Field string

const (
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldPhone           Field = "phone"
	FieldAddress         Field = "address"
	FieldDateOfBirth     Field = "dateOfBirth"
	FieldReferralCode    Field = "referralCode"
	FieldRulesAccepted   Field = "rulesAccepted"
	FieldPaymentProof    Field = "paymentProof"
)

// Errors maps fields to their validation message.
type Errors map[Field]string

// Error joins all messages in field order so Errors can be returned as an error.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+e[Field(f)])
	}
	return strings.Join(msgs, "; ")
}

func (e Errors) clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Draft is the unsubmitted registration.
type Draft struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           string
	Address         string
	DateOfBirth     string
	ReferralCode    string
	PaymentMethod   string
	RulesAccepted   bool
	PaymentProof    *model.ProofFile
}

func newDraft() Draft {
	return Draft{PaymentMethod: model.PaymentMethodBank}
}

// Payload converts the draft into the registration request.
// The password confirmation is never sent.
func (d Draft) Payload() model.RegistrationPayload {
	return model.RegistrationPayload{
		Email:         d.Email,
		Password:      d.Password,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Phone:         d.Phone,
		Address:       d.Address,
		DateOfBirth:   d.DateOfBirth,
		ReferralCode:  strings.TrimSpace(d.ReferralCode),
		PaymentMethod: model.PaymentMethodBank,
	}
}

// Credentials returns the login credentials the draft registers with.
func (d Draft) Credentials() model.Credentials {
	return model.Credentials{Email: d.Email, Password: d.Password}
}

func (d *Draft) set(f Field, v string) bool {
	switch f {
	case FieldEmail:
		d.Email = v
	case FieldPassword:
		d.Password = v
	case FieldConfirmPassword:
		d.ConfirmPassword = v
	case FieldFirstName:
		d.FirstName = v
	case FieldLastName:
		d.LastName = v
	case FieldPhone:
		d.Phone = v
	case FieldAddress:
		d.Address = v
	case FieldDateOfBirth:
		d.DateOfBirth = v
	case FieldReferralCode:
		d.ReferralCode = v
	default:
		return false
	}
	return true
}

func (d Draft) clone() Draft {
	if d.PaymentProof != nil {
		p := *d.PaymentProof
		d.PaymentProof = &p
	}
	return d
}
