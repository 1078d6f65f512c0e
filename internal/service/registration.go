package service

import (
	"context"
	"fmt"

	"github.com/dtroode/ttportal/internal/api"
	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
	"github.com/dtroode/ttportal/internal/wizard"
)

// Authenticator registers accounts and opens sessions.
type Authenticator interface {
	Register(ctx context.Context, payload model.RegistrationPayload) (string, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
}

// ProofUploader sends an accepted proof file.
type ProofUploader interface {
	Upload(ctx context.Context, file model.ProofFile, tournamentID string) (model.ProofUpload, error)
}

var _ wizard.Submitter = (*Registration)(nil)

// Registration completes a submitted wizard draft: it registers the account,
// logs in with the same credentials and uploads the payment proof.
type Registration struct {
	auth     Authenticator
	uploader ProofUploader
	logger   *logger.Logger
}

func NewRegistration(auth Authenticator, uploader ProofUploader, logger *logger.Logger) *Registration {
	return &Registration{
		auth:     auth,
		uploader: uploader,
		logger:   logger,
	}
}

// Submit registers the draft. Only the registration itself decides success;
// later failures are returned as a warning on the receipt.
func (r *Registration) Submit(ctx context.Context, draft wizard.Draft) (wizard.Receipt, error) {
	msg, err := r.auth.Register(ctx, draft.Payload())
	if err != nil {
		return wizard.Receipt{}, err
	}

	receipt := wizard.Receipt{Message: msg}
	if draft.PaymentProof == nil {
		return receipt, nil
	}

	if _, err := r.auth.Login(ctx, draft.Email, draft.Password); err != nil {
		r.logger.Warn("Registration service: registered but login failed, proof not uploaded",
			"email", draft.Email,
			"error", err.Error())
		receipt.Warning = fmt.Sprintf("Registered, but could not log in to upload the payment proof: %s. Log in and run upload-proof.",
			api.MessageOf(err, "login failed"))
		return receipt, nil
	}

	if _, err := r.uploader.Upload(ctx, *draft.PaymentProof, ""); err != nil {
		r.logger.Warn("Registration service: registered but proof upload failed",
			"email", draft.Email,
			"error", err.Error())
		receipt.Warning = fmt.Sprintf("Registered, but the payment proof upload failed: %s. Run upload-proof to retry.",
			api.MessageOf(err, "Network error. Please try again."))
		return receipt, nil
	}

	r.logger.Info("Registration service: registration completed with payment proof",
		"email", draft.Email)
	return receipt, nil
}
