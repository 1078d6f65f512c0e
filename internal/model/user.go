package model

import (
	"encoding/json"
	"strings"
	"time"
)

// RegistrationStatus is the review state of a registration.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// PaymentStatus is the verification state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
)

// CashbackStatus is the payout state of a referral cashback.
type CashbackStatus string

const (
	CashbackPending  CashbackStatus = "pending"
	CashbackApproved CashbackStatus = "approved"
	CashbackRejected CashbackStatus = "rejected"
)

// User is a backend user record as returned by the users endpoints.
type User struct {
	ID                 string             `json:"_id"`
	Email              string             `json:"email"`
	FirstName          string             `json:"firstName"`
	LastName           string             `json:"lastName"`
	Phone              string             `json:"phone,omitempty"`
	Address            string             `json:"address,omitempty"`
	DateOfBirth        string             `json:"dateOfBirth,omitempty"`
	RegistrationID     string             `json:"registrationId,omitempty"`
	RegistrationStatus RegistrationStatus `json:"registrationStatus,omitempty"`
	PaymentStatus      PaymentStatus      `json:"paymentStatus,omitempty"`
	CashbackStatus     CashbackStatus     `json:"cashbackStatus,omitempty"`
	ReferralCode       string             `json:"referralCode,omitempty"`
	ReferralCount      int                `json:"referralCount"`
	CashbackEligible   bool               `json:"cashbackEligible"`
	CashbackAmount     int                `json:"cashbackAmount"`
	AccountNumber      string             `json:"accountNumber,omitempty"`
	BankName           string             `json:"bankName,omitempty"`
	IsAdmin            bool               `json:"isAdmin"`
	CreatedAt          time.Time          `json:"createdAt"`

	// Token is only present in login responses.
	Token string `json:"token,omitempty"`
}

// FullName joins first and last name, falling back to "N/A".
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return "N/A"
	}
	return name
}

// SessionUser strips a user record down to what is cached with the session.
func (u User) SessionUser() SessionUser {
	return SessionUser{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		RegistrationID: u.RegistrationID,
		ReferralCode:   u.ReferralCode,
		IsAdmin:        u.IsAdmin,
	}
}

// Credentials are sent to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries editable profile fields. Empty fields are omitted.
type ProfileUpdate struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

// StatusField names the user status an admin can change.
type StatusField string

const (
	FieldRegistrationStatus StatusField = "registrationStatus"
	FieldPaymentStatus      StatusField = "paymentStatus"
	FieldCashbackStatus     StatusField = "cashbackStatus"
)

// StatusUpdate changes exactly one status field of a user.
type StatusUpdate struct {
	Field StatusField
	Value string
}

// MarshalJSON encodes the update as a single-key object, e.g. {"paymentStatus":"confirmed"}.
func (u StatusUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{string(u.Field): u.Value})
}

// ReferralStats summarizes the referrals made with a user's code.
type ReferralStats struct {
	ReferralCode     string `json:"referralCode"`
	ReferralCount    int    `json:"referralCount"`
	CashbackEligible bool   `json:"cashbackEligible"`
	CashbackAmount   int    `json:"cashbackAmount"`
	ReferredUsers    []User `json:"referredUsers"`
}
