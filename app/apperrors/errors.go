// Package apperrors defines the sentinel errors shared across layers.
// Repositories and services return these (possibly wrapped with detail via
// fmt.Errorf and %w); controllers map them to HTTP status codes.
package apperrors

import "errors"

var (
	// ErrInvalidInput marks missing or malformed caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized marks a request with no verified identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks an identity mismatch against a resource owner.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a lookup of an unknown id.
	ErrNotFound = errors.New("record not found")

	// ErrDatabase marks an unexpected storage failure.
	ErrDatabase = errors.New("database failure")
)
