package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dtroode/ttportal/internal/model"
	"github.com/dtroode/ttportal/internal/view"
)

func pkr(amount int) string {
	return "PKR " + humanize.Comma(int64(amount))
}

func date(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}

func dateRelative(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return fmt.Sprintf("%s (%s)", date(t), humanize.Time(t))
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func tracker(p view.CashbackProgress) string {
	filled := min(p.FilledSegments, p.Segments)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", p.Segments-filled) + "]"
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderCashback(w io.Writer, p view.CashbackProgress) {
	fmt.Fprintf(w, "Referrals:        %d\n", p.Count)
	fmt.Fprintf(w, "Progress:         %s %d%%\n", tracker(p), int(p.Fraction*100))
	if p.Eligible {
		fmt.Fprintf(w, "Cashback:         %s (%d%% of the registration fee)\n", pkr(p.Amount), p.PercentOfFee)
		return
	}
	fmt.Fprintf(w, "Cashback:         %d more referral(s) to qualify\n", p.Remaining)
}

func renderDashboard(w io.Writer, d view.DashboardData) {
	if d.Tournament == nil {
		fmt.Fprintln(w, "No tournaments scheduled.")
		return
	}

	t := d.Tournament
	fmt.Fprintf(w, "%s\n", t.Name)
	if t.Location != "" {
		fmt.Fprintf(w, "Location:         %s\n", t.Location)
	}
	fmt.Fprintf(w, "Starts:           %s, %d day(s) to go\n", date(t.StartDate), d.DaysUntil)
	fmt.Fprintf(w, "Participants:     %d / %d\n", d.RegisteredParticipants, d.TotalParticipants)
	fmt.Fprintf(w, "Prize pool:       %s\n", pkr(d.PrizePool))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Registration:     %s\n", title(string(d.RegistrationStatus)))
	fmt.Fprintf(w, "Payment:          %s\n", title(string(d.PaymentStatus)))
	fmt.Fprintf(w, "Referrals:        %d\n", d.ReferralCount)
	if d.CashbackEligible {
		fmt.Fprintf(w, "Cashback:         %s\n", pkr(d.CashbackAmount))
	}

	if len(d.UpcomingMatches) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Upcoming matches:")
	tw := newTable(w)
	fmt.Fprintln(tw, "  ROUND\tWHEN\tMATCH")
	for _, m := range d.UpcomingMatches {
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", m.Round, dateRelative(m.ScheduledTime), m.ID)
	}
	_ = tw.Flush()
}

func renderStatus(w io.Writer, s view.StatusData) {
	if s.Tournament != nil {
		fmt.Fprintf(w, "%s\n", s.Tournament.Name)
	}
	fmt.Fprintf(w, "Registration ID:  %s\n", orNA(s.RegistrationID))
	fmt.Fprintf(w, "Registered:       %s\n", date(s.RegisteredAt))
	fmt.Fprintf(w, "Status:           %s\n", title(string(s.Status)))
	fmt.Fprintf(w, "Payment:          %s\n", title(string(s.PaymentStatus)))
	fmt.Fprintf(w, "Referral code:    %s\n", orNA(s.ReferralCode))
	renderCashback(w, s.Cashback)

	switch s.Status {
	case model.RegistrationApproved:
		fmt.Fprintln(w, "\nYour registration is approved. See you at the tournament!")
	case model.RegistrationRejected:
		fmt.Fprintln(w, "\nYour registration was rejected. Please contact the organizers.")
	default:
		if s.PaymentStatus != model.PaymentConfirmed {
			fmt.Fprintln(w, "\nWe are verifying your payment. This usually takes 24-48 hours.")
		}
	}
}

func renderReferrals(w io.Writer, r view.ReferralData) {
	fmt.Fprintf(w, "Referral code:    %s\n", orNA(r.Stats.ReferralCode))
	if r.ShareLink != "" {
		fmt.Fprintf(w, "Share link:       %s\n", r.ShareLink)
		fmt.Fprintf(w, "Register link:    %s\n", r.RegisterLink)
	}
	renderCashback(w, r.Cashback)

	if len(r.Stats.ReferredUsers) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw := newTable(w)
	fmt.Fprintln(tw, "NAME\tEMAIL\tJOINED\tSTATUS")
	for _, u := range r.Stats.ReferredUsers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.FullName(), u.Email, date(u.CreatedAt), orDefault(string(u.RegistrationStatus), "pending"))
	}
	_ = tw.Flush()
}

func renderAdmin(w io.Writer, snap view.Snapshot[view.AdminData], filter view.Filter) {
	d := snap.Data
	fmt.Fprintf(w, "Registrations: %d   Total cashback: %s   Pending: %s   Approved: %s\n",
		d.Stats.TotalRegistrations, pkr(d.Stats.TotalCashback), pkr(d.Stats.PendingCashback), pkr(d.Stats.ApprovedCashback))
	if !snap.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "Last updated: %s\n", snap.UpdatedAt.Format(time.TimeOnly))
	}
	if snap.Stale != nil {
		fmt.Fprintln(w, "Failed to fetch data. Please try again.")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Registrations")
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tREGISTERED\tSTATUS\tPAYMENT\tREFERRAL")
	for _, r := range d.FilterRegistrations(filter) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, r.Email, date(r.RegisteredAt), r.Status, r.PaymentStatus, r.ReferralCode)
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cashback")
	tw = newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tREFERRALS\tAMOUNT\tACCOUNT\tBANK\tSTATUS")
	for _, c := range d.FilterCashbacks(filter) {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.ReferralCount, pkr(c.Amount), c.AccountNumber, c.BankName, c.Status)
	}
	_ = tw.Flush()
}

func renderBracket(w io.Writer, b model.Bracket, stats model.BracketStats) {
	fmt.Fprintf(w, "Bracket %s (%s), round %d\n", b.ID, b.Status, b.CurrentRound)
	fmt.Fprintf(w, "Matches: %d completed, %d pending, %d total over %d round(s)\n",
		stats.CompletedMatches, stats.PendingMatches, stats.TotalMatches, stats.TotalRounds)
	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintln(tw, "ROUND\tMATCH\tPLAYER 1\tPLAYER 2\tSCORE\tSTATUS")
	for _, n := range b.Nodes {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%d-%d\t%s\n",
			n.Round, n.MatchNumber, playerName(n.Player1), playerName(n.Player2), n.Player1Score, n.Player2Score, n.Status)
	}
	_ = tw.Flush()
}

func playerName(p *model.BracketPlayer) string {
	if p == nil {
		return "TBD"
	}
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Email
	}
	return name
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
