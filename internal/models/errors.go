package models

import "errors"

// Sentinel errors surfaced by repos and services. Handlers map them to
// HTTP status codes with errors.Is; anything else is a 500 and the
// underlying message is passed through to the caller.
var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)
