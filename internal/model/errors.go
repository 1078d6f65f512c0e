package model

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")
	ErrTokenMalformed = errors.New("token malformed")
)
