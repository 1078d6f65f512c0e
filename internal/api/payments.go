package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/dtroode/ttportal/internal/model"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadPaymentProof sends a proof image as multipart form data.
// tournamentID is optional.
func (c *Client) UploadPaymentProof(ctx context.Context, file model.ProofFile, tournamentID string) (model.ProofUpload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	h.Set("Content-Type", file.MIME)
	part, err := w.CreatePart(h)
	if err != nil {
		return model.ProofUpload{}, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return model.ProofUpload{}, fmt.Errorf("failed to write file part: %w", err)
	}

	if tournamentID != "" {
		if err := w.WriteField("tournamentId", tournamentID); err != nil {
			return model.ProofUpload{}, fmt.Errorf("failed to write tournament field: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return model.ProofUpload{}, fmt.Errorf("failed to close multipart body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, pathUploadProof, &buf, w.FormDataContentType())
	if err != nil {
		return model.ProofUpload{}, err
	}

	var upload model.ProofUpload
	if err := resp.decode(&upload); err != nil {
		return model.ProofUpload{}, err
	}
	return upload, nil
}
