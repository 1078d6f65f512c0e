package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend call.
type Kind string

const (
	// KindNetwork means the request never produced an HTTP response.
	KindNetwork Kind = "network"
	// KindTimeout means the request exceeded its deadline.
	KindTimeout Kind = "timeout"
	// KindServer means the backend answered with a non-2xx status or success=false.
	KindServer Kind = "server"
	// KindDecode means the backend answered with a body the client could not read.
	KindDecode Kind = "decode"
)

// Error is returned by every Client method that fails.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Err.Error())
	default:
		return fmt.Sprintf("%s error", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of an api error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return "", false
}

// StatusOf returns the HTTP status of a server error, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the backend message carried by err, or fallback when
// err carries none.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindServer && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func httpStatusMessage(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}
