package services

import "errors"

// Sentinels shared across services; handlers map these to HTTP statuses.
var (
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUserNotFound = errors.New("user not found")
)
