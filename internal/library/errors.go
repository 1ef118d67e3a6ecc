package library

import "errors"

var (
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrNotFound is returned when no pair has the requested name.
	ErrNotFound = errors.New("pair not found")
	// ErrCommitBusy is returned when another process is writing to the library.
	ErrCommitBusy = errors.New("library commit already in progress")
	// ErrInsufficientSpace is returned when caching would cross the free-space floor.
	ErrInsufficientSpace = errors.New("insufficient free space for cache")
)
