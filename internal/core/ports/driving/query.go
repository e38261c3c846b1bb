// Package driving defines the inbound port interfaces exposed by the core.
// The CLI, TUI, and MCP adapters drive the application through these.
package driving

import (
	"context"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
)

// ProgressFunc receives progress events as source searches start and
// finish. A given source's events arrive in order (searching, then
// completed or error); no ordering is guaranteed across sources.
// At most one sink is supported per search invocation.
type ProgressFunc func(domain.SearchProgress)

// QueryService orchestrates searches across multiple data sources.
type QueryService interface {
	// Search fans the query out to all relevant sources, merges the
	// results, and returns them ranked and deduplicated. onProgress may
	// be nil.
	Search(ctx context.Context, query string, opts domain.SearchOptions, onProgress ProgressFunc) ([]domain.SearchResult, error)

	// SearchSource runs the query against a single named source.
	// Returns domain.ErrSourceNotFound if the name does not match a
	// configured source.
	SearchSource(ctx context.Context, sourceName, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// FormatResults renders a bounded, human-readable summary of an
	// already-ranked result list, grouped by source.
	FormatResults(results []domain.SearchResult, maxResults int) string

	// Sources returns the configured data sources in enumeration order.
	Sources() []driven.DataSource
}
