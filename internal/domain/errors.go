package domain

import (
	"errors"

	"shortlink/internal/domain/valueobject"
)

var (
	// ErrNotFound is returned when a code does not resolve to a live link:
	// never allocated, deleted, or expired.
	ErrNotFound = errors.New("short link not found")

	// ErrCodeConflict is returned when a caller-supplied custom code is
	// already taken.
	ErrCodeConflict = errors.New("short code already exists")

	// ErrCodeSpaceExhausted is returned when code generation gives up after
	// the maximum number of allocation attempts.
	ErrCodeSpaceExhausted = errors.New("short code generation failed after max attempts")

	// Re-export value object errors for convenience.
	ErrInvalidURL  = valueobject.ErrInvalidURL
	ErrInvalidCode = valueobject.ErrInvalidCode
)
