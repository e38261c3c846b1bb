package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid caller input,
	// such as an empty search query.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSources indicates no data sources are configured at all.
	// A search cannot run without at least one source.
	ErrNoSources = errors.New("no data sources configured")

	// ErrSourceNotFound indicates an explicitly named source is not
	// configured. Distinct from a configured source returning no matches.
	ErrSourceNotFound = errors.New("source not configured")

	// ErrSourceUnavailable indicates a source could not be reached at
	// startup. The source is excluded for the process lifetime.
	ErrSourceUnavailable = errors.New("source unavailable")
)
