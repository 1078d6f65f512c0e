package view

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dtroode/ttportal/internal/cashback"
	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
)

// ReferralData is the referral statistics screen.
type ReferralData struct {
	Stats        model.ReferralStats
	ShareLink    string
	RegisterLink string
	ShareText    string
	Cashback     CashbackProgress
}

// ShareLink is the public link for a referral code.
func ShareLink(origin, code string) string {
	return strings.TrimRight(origin, "/") + "/referral/" + url.PathEscape(code)
}

// RegisterLink opens the registration wizard with the code prefilled.
func RegisterLink(origin, code string) string {
	return strings.TrimRight(origin, "/") + "/register?ref=" + url.QueryEscape(code)
}

// ReferralView loads referral statistics of the session owner.
type ReferralView struct {
	*Query[ReferralData]

	users  model.UserAPI
	tier   cashback.Tier
	fee    int
	origin string
}

// NewReferralView creates a referral view. Call Load to fetch it.
func NewReferralView(users model.UserAPI, tier cashback.Tier, fee int, origin string, logger *logger.Logger) *ReferralView {
	v := &ReferralView{
		users:  users,
		tier:   tier,
		fee:    fee,
		origin: origin,
	}
	v.Query = NewQuery("referral stats", v.fetch, logger)
	return v
}

func (v *ReferralView) fetch(ctx context.Context) (ReferralData, error) {
	stats, err := v.users.ReferralStats(ctx)
	if err != nil {
		return ReferralData{}, fmt.Errorf("failed to fetch referral stats: %w", err)
	}

	data := ReferralData{
		Stats:    stats,
		Cashback: NewCashbackProgress(v.tier, stats.ReferralCount, v.fee),
	}
	if stats.ReferralCode != "" {
		data.ShareLink = ShareLink(v.origin, stats.ReferralCode)
		data.RegisterLink = RegisterLink(v.origin, stats.ReferralCode)
		data.ShareText = fmt.Sprintf("Join the Table Tennis Tournament! Use my referral code %s to get a discount on your registration fee.", stats.ReferralCode)
	}
	return data, nil
}
