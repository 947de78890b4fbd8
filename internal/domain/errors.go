package domain

import "errors"

// Sentinel errors for archive operations
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrServerUnavailable indicates the archive API is unreachable
	ErrServerUnavailable = errors.New("archive server is unreachable")

	// ErrUnexpectedStatus indicates the archive API answered with a non-success status
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrDisabled indicates a fetch was skipped because its identifying key is unset
	ErrDisabled = errors.New("fetch disabled")
)
