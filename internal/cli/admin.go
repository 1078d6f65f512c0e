package cli

import (
	"context"
	"fmt"

	"github.com/dtroode/ttportal/internal/model"
	"github.com/dtroode/ttportal/internal/view"
)

func (a *App) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: admin expects a subcommand", ErrUsage)
	}

	switch sub := args[0]; sub {
	case "list":
		return a.adminList(ctx, args[1:])
	case "generate-bracket":
		return a.adminGenerateBracket(ctx, args[1:])
	case "seed-bracket":
		return a.adminSeedBracket(ctx, args[1:])
	case "bracket-result":
		return a.adminBracketResult(ctx, args[1:])
	default:
		action, err := view.ParseAction(sub)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return a.adminApply(ctx, action, args[1:])
	}
}

func (a *App) newAdminList() *view.AdminList {
	return view.NewAdminList(a.Client, a.Session, a.Tier, a.Config.Admin, a.Logger)
}

func (a *App) adminList(ctx context.Context, args []string) error {
	fs := a.flags("admin list")
	var filter view.Filter
	fs.StringVar(&filter.Search, "search", "", "match name, email or referral code")
	fs.StringVar(&filter.Status, "status", view.FilterAll, "all, pending, approved or rejected")
	watch := fs.Bool("watch", false, "keep refreshing until interrupted")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	list := a.newAdminList()
	defer list.Close()

	if err := list.Load(ctx); err != nil {
		return &viewError{msg: "Failed to fetch data. Please try again.", err: err}
	}
	renderAdmin(a.out, list.Snapshot(), filter)

	if !*watch {
		return nil
	}

	list.OnUpdate(func(snap view.Snapshot[view.AdminData]) {
		a.println()
		renderAdmin(a.out, snap, filter)
	})
	list.Watch(ctx)
	<-ctx.Done()
	return nil
}

func (a *App) adminApply(ctx context.Context, action view.Action, args []string) error {
	rest, err := parse(a.flags("admin "+string(action)), args, 1)
	if err != nil {
		return err
	}
	userID := rest[0]

	list := a.newAdminList()
	defer list.Close()

	if err := list.Apply(ctx, userID, action); err != nil {
		return &viewError{msg: list.ActionError(), err: err}
	}
	a.println(list.Flash())

	for _, r := range list.Snapshot().Data.Registrations {
		if r.ID == userID {
			a.printf("%s: registration %s, payment %s\n", r.Name, r.Status, r.PaymentStatus)
		}
	}
	for _, c := range list.Snapshot().Data.Cashbacks {
		if c.ID == userID {
			a.printf("%s: cashback %s (%s)\n", c.Name, c.Status, pkr(c.Amount))
		}
	}
	return nil
}

func (a *App) adminGenerateBracket(ctx context.Context, args []string) error {
	rest, err := parse(a.flags("admin generate-bracket"), args, 1)
	if err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	b, err := a.Client.GenerateBracket(ctx, rest[0])
	if err != nil {
		return &viewError{msg: "Failed to generate bracket.", err: err}
	}
	a.printf("Bracket %s generated with %d match(es).\n", b.ID, len(b.Nodes))
	return nil
}

func (a *App) requireAdmin() error {
	if s, ok := a.Session.Current(); !ok || !s.IsAdmin() {
		return view.ErrNotAdmin
	}
	return nil
}

// adminSeedBracket seeds players in the given order. Without player ids the
// backend seeds randomly.
func (a *App) adminSeedBracket(ctx context.Context, args []string) error {
	rest, err := parseAtLeast(a.flags("admin seed-bracket"), args, 1)
	if err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	b, err := a.Client.SeedBracket(ctx, rest[0], model.SeedRequest{SeedOrder: rest[1:]})
	if err != nil {
		return &viewError{msg: "Failed to seed bracket.", err: err}
	}
	a.printf("Bracket %s seeded, round %d of %d match(es).\n", b.ID, b.CurrentRound, len(b.Nodes))
	return nil
}

func (a *App) adminBracketResult(ctx context.Context, args []string) error {
	fs := a.flags("admin bracket-result")
	var result model.MatchResult
	fs.StringVar(&result.WinnerID, "winner", "", "id of the winning player")
	fs.IntVar(&result.Player1Score, "p1", 0, "player 1 score")
	fs.IntVar(&result.Player2Score, "p2", 0, "player 2 score")
	rest, err := parse(fs, args, 2)
	if err != nil {
		return err
	}
	if result.WinnerID == "" {
		return fmt.Errorf("%w: admin bracket-result requires --winner", ErrUsage)
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	b, err := a.Client.UpdateBracketMatch(ctx, rest[0], rest[1], result)
	if err != nil {
		return &viewError{msg: "Failed to update match result.", err: err}
	}
	for _, n := range b.Nodes {
		if n.ID == rest[1] {
			a.printf("Match %d (round %d): %d-%d, %s\n", n.MatchNumber, n.Round, n.Player1Score, n.Player2Score, n.Status)
		}
	}
	a.printf("Bracket %s is %s, round %d.\n", b.ID, b.Status, b.CurrentRound)
	return nil
}
