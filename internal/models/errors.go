package models

import "errors"

// Application-wide standard errors
var (
	// ErrNotFound is returned when the requested id has no row.
	ErrNotFound = errors.New("resource not found")

	// ErrStorage wraps connection, query, I/O and constraint failures.
	ErrStorage = errors.New("storage error")

	// ErrInvalidArgument is returned for requests that cannot be executed as given,
	// e.g. a page patch without any fields.
	ErrInvalidArgument = errors.New("invalid argument")
)
