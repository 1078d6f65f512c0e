package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtroode/ttportal/internal/api"
	"github.com/dtroode/ttportal/internal/cashback"
	"github.com/dtroode/ttportal/internal/cli"
	"github.com/dtroode/ttportal/internal/config"
	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
	"github.com/dtroode/ttportal/internal/proof"
	"github.com/dtroode/ttportal/internal/service"
	"github.com/dtroode/ttportal/internal/session"
	storage "github.com/dtroode/ttportal/internal/storage/file"
	"github.com/dtroode/ttportal/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)
	logAppVersion(logger)

	tier, err := cashback.NewTier(cfg.Cashback)
	if err != nil {
		logger.Fatal("invalid cashback tier", "error", err)
	}

	storageClient, err := storage.NewClient(cfg.Session.Dir)
	if err != nil {
		logger.Fatal("failed to initialize session storage", "error", err)
	}
	sessionStore := session.NewStore(storageClient, token.NewJWT(), logger)
	sessionManager, err := session.NewManager(sessionStore, logger)
	if err != nil {
		logger.Fatal("failed to restore session", "error", err)
	}

	var sl model.SecurityLayer
	if cfg.API.CustomTLS() {
		sl = api.NewTLSLayer(cfg.API.CAFile, cfg.API.CertFile, cfg.API.KeyFile)
	} else {
		sl = api.NewPlainLayer()
	}
	transport, err := sl.Transport()
	if err != nil {
		logger.Fatal("failed to set up backend transport", "error", err)
	}

	client := api.NewClient(cfg.API, sessionManager, logger, api.WithTransport(transport))
	checker := proof.NewChecker(cfg.Proof)

	authService := service.NewAuth(client, sessionManager, logger)
	paymentService := service.NewPayment(client, checker, sessionManager, logger)

	app := cli.New(cli.Deps{
		Config:  cfg,
		Client:  client,
		Session: sessionManager,
		Auth:    authService,
		Payment: paymentService,
		Checker: checker,
		Tier:    tier,
		Logger:  logger,
		Build: cli.BuildInfo{
			Version: buildVersion,
			Date:    buildDate,
			Commit:  buildCommit,
		},
	}, os.Stdin, os.Stdout, os.Stderr)

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		logger.Debug("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", cli.Describe(err))
		os.Exit(1)
	}
}

func logAppVersion(logger *logger.Logger) {
	logger.Debug("ttportal build",
		"version", buildVersion,
		"date", buildDate,
		"commit", buildCommit)
}
