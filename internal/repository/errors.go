package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when an insert collides with an existing id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrContention is returned when an optimistic update keeps losing to concurrent writers.
	ErrContention = errors.New("too much contention")
)
