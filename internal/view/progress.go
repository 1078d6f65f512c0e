package view

import "github.com/dtroode/ttportal/internal/cashback"

// CashbackProgress is the referral tracker shown on status and referral views.
type CashbackProgress struct {
	Count          int
	Eligible       bool
	Amount         int
	Remaining      int
	Fraction       float64
	Segments       int
	FilledSegments int
	PercentOfFee   int
}

// NewCashbackProgress derives the tracker for count referrals.
func NewCashbackProgress(tier cashback.Tier, count, fee int) CashbackProgress {
	return CashbackProgress{
		Count:          count,
		Eligible:       tier.IsEligible(count),
		Amount:         tier.Amount(count),
		Remaining:      tier.Remaining(count),
		Fraction:       tier.ProgressFraction(count),
		Segments:       tier.Segments(),
		FilledSegments: tier.FilledSegments(count),
		PercentOfFee:   tier.PercentOfFee(count, fee),
	}
}
