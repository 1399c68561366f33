package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexUnavailable indicates the page index is not configured.
	// Full-text page search and index mutations are disabled.
	ErrIndexUnavailable = errors.New("page index unavailable")

	// ErrAnnotationsUnavailable indicates the annotation store is not
	// configured. Annotation search is disabled.
	ErrAnnotationsUnavailable = errors.New("annotation store unavailable")
)
