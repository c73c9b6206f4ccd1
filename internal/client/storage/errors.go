package storage

import "errors"

// Common client storage errors
var (
	// ErrRowNotFound indicates that no row with the given id exists in the table
	ErrRowNotFound = errors.New("cached row not found")

	// ErrUnknownTable indicates a table that is not part of the cache schema
	ErrUnknownTable = errors.New("unknown cache table")

	// ErrForeignKeyViolation indicates that a row references a missing parent row
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
