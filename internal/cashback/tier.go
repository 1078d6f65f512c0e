// Package cashback derives referral cashback values from a referral count.
// All functions are pure and total over non-negative counts; negative counts
// are treated as zero.
package cashback

import (
	"fmt"
	"math"

	"github.com/dtroode/ttportal/internal/config"
)

// Tier holds the bounds of the referral cashback tier.
type Tier struct {
	MinCount    int
	MaxCount    int
	MinCashback int
	MaxCashback int
}

// DefaultTier is the tier used by the backend: 150 PKR at 3 referrals up to
// 1500 PKR at 30.
var DefaultTier = Tier{MinCount: 3, MaxCount: 30, MinCashback: 150, MaxCashback: 1500}

// NewTier builds a validated tier from configuration.
func NewTier(cfg config.Cashback) (Tier, error) {
	t := Tier{
		MinCount:    cfg.MinCount,
		MaxCount:    cfg.MaxCount,
		MinCashback: cfg.MinCashback,
		MaxCashback: cfg.MaxCashback,
	}
	if err := t.Validate(); err != nil {
		return Tier{}, err
	}
	return t, nil
}

// Validate rejects tiers the derivation functions cannot serve.
func (t Tier) Validate() error {
	if t.MinCount < 0 {
		return fmt.Errorf("invalid cashback tier: min count %d is negative", t.MinCount)
	}
	if t.MaxCount <= t.MinCount {
		return fmt.Errorf("invalid cashback tier: max count %d must exceed min count %d", t.MaxCount, t.MinCount)
	}
	if t.MinCashback < 0 || t.MaxCashback < t.MinCashback {
		return fmt.Errorf("invalid cashback tier: amounts %d..%d", t.MinCashback, t.MaxCashback)
	}
	return nil
}

func (t Tier) span() int {
	return t.MaxCount - t.MinCount
}

// IsEligible reports whether n referrals earn a cashback.
func (t Tier) IsEligible(n int) bool {
	return max(n, 0) >= t.MinCount
}

// Amount is the cashback in PKR earned by n referrals.
func (t Tier) Amount(n int) int {
	n = max(n, 0)
	if n < t.MinCount {
		return 0
	}
	step := float64((n-t.MinCount)*(t.MaxCashback-t.MinCashback)) / float64(t.span())
	return min(t.MinCashback+int(math.Round(step)), t.MaxCashback)
}

// ProgressFraction is the position of n within the tier, in [0, 1].
func (t Tier) ProgressFraction(n int) float64 {
	f := float64(max(n, 0)-t.MinCount) / float64(t.span())
	return math.Min(math.Max(f, 0), 1)
}

// Remaining is how many more referrals are needed to become eligible.
func (t Tier) Remaining(n int) int {
	return max(0, t.MinCount-max(n, 0))
}

// Segments is the number of steps of the discrete progress tracker.
func (t Tier) Segments() int {
	return t.span()
}

// FilledSegments is how many tracker steps n referrals fill.
func (t Tier) FilledSegments(n int) int {
	return min(max(max(n, 0)-t.MinCount, 0), t.Segments())
}

// PercentOfFee expresses the cashback for n referrals as a whole percentage
// of the registration fee.
func (t Tier) PercentOfFee(n, fee int) int {
	if fee <= 0 {
		return 0
	}
	return int(math.Round(float64(t.Amount(n)) * 100 / float64(fee)))
}
