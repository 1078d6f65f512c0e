package model

import "time"

// PaymentMethodBank is the only supported payment method.
const PaymentMethodBank = "bank"

// ReferralValidation is the backend's answer for a valid referral code.
type ReferralValidation struct {
	ReferrerName   string `json:"referrerName"`
	Discount       int    `json:"discount"`
	OriginalAmount int    `json:"originalAmount"`
	FinalAmount    int    `json:"finalAmount"`
}

// RegistrationPayload is the submitted registration. It never carries the
// password confirmation.
type RegistrationPayload struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	DateOfBirth   string `json:"dateOfBirth"`
	ReferralCode  string `json:"referralCode"`
	PaymentMethod string `json:"paymentMethod"`
}

// RegistrationRecord is the server-owned view of a user's registration.
type RegistrationRecord struct {
	ID               string             `json:"id"`
	Status           RegistrationStatus `json:"status"`
	PaymentStatus    PaymentStatus      `json:"paymentStatus"`
	ReferralCode     string             `json:"referralCode"`
	ReferralCount    int                `json:"referralCount"`
	CashbackEligible bool               `json:"cashbackEligible"`
	CashbackAmount   int                `json:"cashbackAmount"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// ProofFile is an accepted payment proof image.
type ProofFile struct {
	Name string
	MIME string
	Data []byte
}

// Size returns the file size in bytes.
func (f ProofFile) Size() int64 {
	return int64(len(f.Data))
}

// ProofUpload is the backend's answer to a payment proof upload.
type ProofUpload struct {
	URL        string    `json:"url"`
	FileName   string    `json:"fileName"`
	UploadedAt time.Time `json:"uploadedAt"`
}
