// Package proof accepts payment proof images.
package proof

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/dtroode/ttportal/internal/config"
	"github.com/dtroode/ttportal/internal/model"
)

var (
	ErrEmpty           = errors.New("file is empty")
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// RejectedError explains why a file was not accepted.
type RejectedError struct {
	Reason  error
	Message string
}

func (e *RejectedError) Error() string { return e.Message }
func (e *RejectedError) Unwrap() error { return e.Reason }

// Checker enforces the single size limit and image type list used by every
// upload path.
type Checker struct {
	maxBytes int64
	allowed  []string
}

// NewChecker creates a new Checker from configuration.
func NewChecker(cfg config.Proof) *Checker {
	return &Checker{maxBytes: cfg.MaxBytes, allowed: cfg.AllowedTypes}
}

// MaxBytes returns the size limit.
func (c *Checker) MaxBytes() int64 {
	return c.maxBytes
}

// Accept validates an in-memory file. The MIME type is detected from the
// content, never taken from the name.
func (c *Checker) Accept(name string, data []byte) (model.ProofFile, error) {
	if len(data) == 0 {
		return model.ProofFile{}, &RejectedError{Reason: ErrEmpty, Message: "File is empty."}
	}
	if int64(len(data)) > c.maxBytes {
		return model.ProofFile{}, c.tooLarge()
	}

	detected := mimetype.Detect(data)
	if !c.allowedType(detected) {
		return model.ProofFile{}, &RejectedError{
			Reason:  fmt.Errorf("%w: %s", ErrUnsupportedType, detected.String()),
			Message: fmt.Sprintf("Invalid file type. Only %s are allowed.", c.typeList()),
		}
	}

	return model.ProofFile{
		Name: filepath.Base(name),
		MIME: mimeOnly(detected.String()),
		Data: data,
	}, nil
}

// Open reads and validates a file from disk. Oversized files are rejected
// before being read.
func (c *Checker) Open(path string) (model.ProofFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.ProofFile{}, fmt.Errorf("failed to open proof file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return model.ProofFile{}, fmt.Errorf("failed to stat proof file: %w", err)
	}
	if info.Size() > c.maxBytes {
		return model.ProofFile{}, c.tooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(f, c.maxBytes+1))
	if err != nil {
		return model.ProofFile{}, fmt.Errorf("failed to read proof file: %w", err)
	}

	return c.Accept(info.Name(), data)
}

func (c *Checker) tooLarge() error {
	return &RejectedError{
		Reason:  ErrTooLarge,
		Message: fmt.Sprintf("File too large. Maximum allowed size is %s.", humanize.IBytes(uint64(c.maxBytes))),
	}
}

func (c *Checker) allowedType(m *mimetype.MIME) bool {
	for _, t := range c.allowed {
		if m.Is(t) {
			return true
		}
	}
	return false
}

// typeList renders the allowed types as "JPG, PNG, GIF, and WEBP".
func (c *Checker) typeList() string {
	labels := make([]string, 0, len(c.allowed))
	for _, t := range c.allowed {
		label := strings.ToUpper(strings.TrimPrefix(t, "image/"))
		if label == "JPEG" {
			label = "JPG"
		}
		labels = append(labels, label)
	}

	switch len(labels) {
	case 0:
		return "no types"
	case 1:
		return labels[0]
	case 2:
		return labels[0] + " and " + labels[1]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + ", and " + labels[len(labels)-1]
	}
}

func mimeOnly(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		return s[:i]
	}
	return s
}
