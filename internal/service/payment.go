package service

import (
	"context"
	"fmt"

	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
)

// ProofOpener reads and validates a proof file from disk.
type ProofOpener interface {
	Open(path string) (model.ProofFile, error)
}

type Payment struct {
	payments model.PaymentAPI
	checker  ProofOpener
	sessions model.SessionProvider
	logger   *logger.Logger
}

func NewPayment(payments model.PaymentAPI, checker ProofOpener, sessions model.SessionProvider, logger *logger.Logger) *Payment {
	return &Payment{
		payments: payments,
		checker:  checker,
		sessions: sessions,
		logger:   logger,
	}
}

// UploadFile validates the file at path and uploads it as payment proof.
func (p *Payment) UploadFile(ctx context.Context, path, tournamentID string) (model.ProofUpload, error) {
	if _, ok := p.sessions.Current(); !ok {
		return model.ProofUpload{}, model.ErrNoSession
	}

	file, err := p.checker.Open(path)
	if err != nil {
		return model.ProofUpload{}, err
	}

	return p.Upload(ctx, file, tournamentID)
}

// Upload sends an already accepted proof file.
func (p *Payment) Upload(ctx context.Context, file model.ProofFile, tournamentID string) (model.ProofUpload, error) {
	session, ok := p.sessions.Current()
	if !ok {
		return model.ProofUpload{}, model.ErrNoSession
	}

	p.logger.Debug("Payment service: uploading proof",
		"user_id", session.UserID(),
		"file", file.Name,
		"size", file.Size(),
		"tournament_id", tournamentID)

	upload, err := p.payments.UploadPaymentProof(ctx, file, tournamentID)
	if err != nil {
		p.logger.Error("Payment service: proof upload failed",
			"user_id", session.UserID(),
			"file", file.Name,
			"error", err.Error())
		return model.ProofUpload{}, fmt.Errorf("failed to upload payment proof: %w", err)
	}

	p.logger.Info("Payment service: proof uploaded",
		"user_id", session.UserID(),
		"url", upload.URL)

	return upload, nil
}
