package core

import "errors"

var (
	// ErrMalformedInput marks a request body that failed shape validation.
	ErrMalformedInput = errors.New("malformed input")

	// ErrPermissionDenied is returned when the actor lacks the required capability.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrStoreClosed is returned by store operations after Close or before Open.
	ErrStoreClosed = errors.New("database not opened")
)
