// Package cli implements the ttportal command line.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dtroode/ttportal/internal/api"
	"github.com/dtroode/ttportal/internal/cashback"
	"github.com/dtroode/ttportal/internal/config"
	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
	"github.com/dtroode/ttportal/internal/proof"
	"github.com/dtroode/ttportal/internal/service"
	"github.com/dtroode/ttportal/internal/view"
)

// ErrUsage is returned when the command line cannot be parsed.
var ErrUsage = errors.New("invalid usage")

// BuildInfo is reported by the version command.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// Deps are the wired components the commands run on.
type Deps struct {
	Config   *config.Config
	Client   *api.Client
	Session  model.SessionManager
	Auth     *service.Auth
	Payment  *service.Payment
	Checker  *proof.Checker
	Tier     cashback.Tier
	Logger   *logger.Logger
	Build    BuildInfo
}

// App dispatches subcommands.
type App struct {
	Deps

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string) error
}

func New(deps Deps, in io.Reader, out, errOut io.Writer) *App {
	return &App{
		Deps:   deps,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

func (a *App) commands() []command {
	return []command{
		{"login", "login [--email E] [--password P]", a.login},
		{"logout", "logout", a.logout},
		{"whoami", "whoami", a.whoami},
		{"profile", "profile [--first-name N] [--last-name N] [--phone P] [--address A] [--dob YYYY-MM-DD]", a.profile},
		{"register", "register [--ref CODE] [--proof FILE]", a.register},
		{"status", "status", a.status},
		{"dashboard", "dashboard", a.dashboard},
		{"referrals", "referrals", a.referrals},
		{"upload-proof", "upload-proof [--tournament ID] FILE", a.uploadProof},
		{"bracket", "bracket TOURNAMENT_ID", a.bracket},
		{"admin", "admin list [--search S] [--status all|pending|approved|rejected] [--watch]\n  admin approve|reject|confirm-payment|approve-cashback|reject-cashback USER_ID\n  admin generate-bracket TOURNAMENT_ID\n  admin seed-bracket BRACKET_ID [PLAYER_ID...]\n  admin bracket-result --winner PLAYER_ID [--p1 N] [--p2 N] BRACKET_ID NODE_ID", a.admin},
		{"health", "health", a.health},
		{"version", "version", a.version},
	}
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		a.usage()
		return nil
	}

	for _, c := range a.commands() {
		if c.name != name {
			continue
		}
		a.Logger.Debug("CLI: running command", "command", name)
		err := c.run(ctx, args[1:])
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	fmt.Fprintf(a.errOut, "unknown command %q\n\n", name)
	a.usage()
	return ErrUsage
}

func (a *App) usage() {
	fmt.Fprintln(a.errOut, "Usage: ttportal <command> [flags]")
	fmt.Fprintln(a.errOut)
	fmt.Fprintln(a.errOut, "Commands:")
	for _, c := range a.commands() {
		fmt.Fprintf(a.errOut, "  %s\n", c.usage)
	}
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parse parses args and checks the number of positional arguments.
func parse(fs *flag.FlagSet, args []string, positional int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != positional {
		return nil, fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrUsage, fs.Name(), positional, fs.NArg())
	}
	return fs.Args(), nil
}

// parseAtLeast is parse for commands taking minArgs or more positional arguments.
func parseAtLeast(fs *flag.FlagSet, args []string, minArgs int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() < minArgs {
		return nil, fmt.Errorf("%w: %s expects at least %d argument(s), got %d", ErrUsage, fs.Name(), minArgs, fs.NArg())
	}
	return fs.Args(), nil
}

// viewError is a failure with a message meant for the terminal.
type viewError struct {
	msg string
	err error
}

func (e *viewError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *viewError) Unwrap() error { return e.err }

// Describe turns err into the line printed for the user.
func Describe(err error) string {
	if d := describeSession(err); d != "" {
		return d
	}

	var ve *viewError
	if errors.As(err, &ve) {
		return ve.msg
	}

	var rejected *proof.RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}

	kind, _ := api.KindOf(err)
	switch kind {
	case api.KindServer:
		return api.MessageOf(err, err.Error())
	case api.KindNetwork:
		return "Network error. Please try again."
	case api.KindTimeout:
		return "Request timed out. Please try again."
	case api.KindDecode:
		return "Unexpected response from server."
	}
	return err.Error()
}

func describeSession(err error) string {
	switch {
	case errors.Is(err, model.ErrNoSession):
		return "Not logged in. Run `ttportal login` first."
	case errors.Is(err, model.ErrSessionExpired):
		return "Your session has expired. Please log in again."
	case errors.Is(err, view.ErrNotAdmin):
		return "Admin access required."
	}
	return ""
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// prompt prints label and reads one line. It fails on end of input.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

func (a *App) confirm(label string) (bool, error) {
	answer, err := a.prompt(label + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
