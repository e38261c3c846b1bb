package driven

import (
	"context"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
)

// DataSource is a searchable content provider. Each source type
// (slack, github, googledrive, filesystem, ...) implements this interface.
//
// Instances are shared read-only across concurrent searches; the core
// never mutates them.
type DataSource interface {
	// Name returns the stable display name of the source.
	Name() string

	// Connect establishes the source's connection. Called once at
	// startup by the host, not per search. A failure makes the source
	// unavailable for the process lifetime but must not crash the host.
	Connect(ctx context.Context) error

	// Disconnect releases the source's connection. Called once at
	// shutdown.
	Disconnect(ctx context.Context) error

	// IsRelevantFor reports whether the source claims relevance for the
	// query. It must be total and side-effect-free.
	IsRelevantFor(query string) bool

	// Search runs the query against the source and returns results in
	// source order. May fail; the orchestrator isolates the failure.
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}
