package service

import "errors"

// Error kinds surfaced by the services. Handlers map these to status codes
// with errors.Is; anything else is a 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
