package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/dtroode/ttportal/internal/model"
	"github.com/dtroode/ttportal/internal/view"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	var err error
	if *email == "" {
		if *email, err = a.prompt("Email"); err != nil {
			return err
		}
	}
	if *password == "" {
		if *password, err = a.prompt("Password"); err != nil {
			return err
		}
	}

	session, err := a.Auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}

	a.printf("Logged in as %s <%s>\n", displayName(session.User), session.User.Email)
	return nil
}

func (a *App) logout(_ context.Context, args []string) error {
	if _, err := parse(a.flags("logout"), args, 0); err != nil {
		return err
	}
	if err := a.Auth.Logout(); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) whoami(_ context.Context, args []string) error {
	if _, err := parse(a.flags("whoami"), args, 0); err != nil {
		return err
	}

	session, err := a.Auth.Current()
	if err != nil {
		return err
	}

	u := session.User
	a.printf("Name:             %s\n", displayName(u))
	a.printf("Email:            %s\n", u.Email)
	a.printf("User ID:          %s\n", u.ID)
	a.printf("Referral code:    %s\n", orNA(u.ReferralCode))
	if u.IsAdmin {
		a.println("Role:             admin")
	}
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	fs := a.flags("profile")
	var update model.ProfileUpdate
	fs.StringVar(&update.FirstName, "first-name", "", "new first name")
	fs.StringVar(&update.LastName, "last-name", "", "new last name")
	fs.StringVar(&update.Phone, "phone", "", "new phone number")
	fs.StringVar(&update.Address, "address", "", "new address")
	fs.StringVar(&update.DateOfBirth, "dob", "", "new date of birth")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	if update != (model.ProfileUpdate{}) {
		msg, err := a.Auth.UpdateProfile(ctx, update)
		if err != nil {
			return err
		}
		a.println(msg)
		return nil
	}

	u, err := a.Auth.Profile(ctx)
	if err != nil {
		return err
	}
	a.printf("Name:             %s\n", u.FullName())
	a.printf("Email:            %s\n", u.Email)
	a.printf("Phone:            %s\n", orNA(u.Phone))
	a.printf("Address:          %s\n", orNA(u.Address))
	a.printf("Date of birth:    %s\n", orNA(u.DateOfBirth))
	a.printf("Member since:     %s\n", date(u.CreatedAt))
	return nil
}

func (a *App) status(ctx context.Context, args []string) error {
	if _, err := parse(a.flags("status"), args, 0); err != nil {
		return err
	}

	v := view.NewStatusView(a.Client, a.Client, a.Session, a.Tier, a.Config.RegistrationFee, a.Logger)
	defer v.Close()

	if err := v.Load(ctx); err != nil {
		return &viewError{msg: "Failed to load registration status. Please try again later.", err: err}
	}
	renderStatus(a.out, v.Snapshot().Data)
	return nil
}

func (a *App) dashboard(ctx context.Context, args []string) error {
	if _, err := parse(a.flags("dashboard"), args, 0); err != nil {
		return err
	}

	d := view.NewDashboard(a.Client, a.Client, a.Session, a.Logger)
	defer d.Close()

	if err := d.Load(ctx); err != nil {
		return &viewError{msg: "Failed to load dashboard data. Please try again later.", err: err}
	}
	renderDashboard(a.out, d.Snapshot().Data)
	return nil
}

func (a *App) referrals(ctx context.Context, args []string) error {
	if _, err := parse(a.flags("referrals"), args, 0); err != nil {
		return err
	}
	if _, ok := a.Session.Current(); !ok {
		return model.ErrNoSession
	}

	v := view.NewReferralView(a.Client, a.Tier, a.Config.RegistrationFee, a.Config.PublicOrigin, a.Logger)
	defer v.Close()

	if err := v.Load(ctx); err != nil {
		return &viewError{msg: "Failed to load referral statistics. Please try again later.", err: err}
	}
	renderReferrals(a.out, v.Snapshot().Data)
	return nil
}

func (a *App) uploadProof(ctx context.Context, args []string) error {
	fs := a.flags("upload-proof")
	tournamentID := fs.String("tournament", "", "tournament the payment is for")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}

	upload, err := a.Payment.UploadFile(ctx, rest[0], *tournamentID)
	if err != nil {
		return err
	}

	a.println("Payment proof uploaded successfully!")
	if upload.FileName != "" {
		a.printf("Stored as %s\n", upload.FileName)
	}
	return nil
}

func (a *App) bracket(ctx context.Context, args []string) error {
	rest, err := parse(a.flags("bracket"), args, 1)
	if err != nil {
		return err
	}

	b, err := a.Client.Bracket(ctx, rest[0])
	if err != nil {
		return &viewError{msg: "Failed to load bracket.", err: err}
	}
	stats, err := a.Client.BracketStats(ctx, rest[0])
	if err != nil {
		return &viewError{msg: "Failed to load bracket.", err: err}
	}

	renderBracket(a.out, b, stats)
	return nil
}

func (a *App) health(ctx context.Context, args []string) error {
	if _, err := parse(a.flags("health"), args, 0); err != nil {
		return err
	}

	h, err := a.Client.Health(ctx)
	if err != nil {
		return err
	}
	a.printf("%s: %s\n", orDefault(h.Status, "OK"), orDefault(h.Message, "backend is reachable"))
	return nil
}

func (a *App) version(_ context.Context, args []string) error {
	if _, err := parse(a.flags("version"), args, 0); err != nil {
		return err
	}
	a.printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", a.Build.Version, a.Build.Date, a.Build.Commit)
	return nil
}

func displayName(u model.SessionUser) string {
	return model.User{FirstName: u.FirstName, LastName: u.LastName}.FullName()
}

func proofSummary(f model.ProofFile) string {
	return fmt.Sprintf("%s (%s, %s)", f.Name, f.MIME, humanize.IBytes(uint64(f.Size())))
}
