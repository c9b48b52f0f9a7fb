// Package errs defines the error taxonomy shared by every service.
package errs

import "errors"

var (
	// ErrNotFound reports a referenced id that does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState reports an operation attempted against an entity
	// in the wrong lifecycle state, such as issuing a book that is not
	// available or returning a transaction twice.
	ErrInvalidState = errors.New("invalid state")

	// ErrAssistantUnavailable reports that the external text-generation
	// service could not produce a reply.
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)
