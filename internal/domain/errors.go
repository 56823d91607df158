package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("resource conflict")
	ErrInvalidInput        = errors.New("invalid input")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrProviderUnavailable = errors.New("external provider unavailable")
	ErrMissingCredential   = errors.New("required credential not configured")
)
