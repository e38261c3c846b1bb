package domain

import "time"

// DefaultMaxResults is the number of results shown when the caller
// does not specify a limit.
const DefaultMaxResults = 10

// DefaultSearchTimeout bounds each source's search operation so a
// stalled source cannot block the whole query.
const DefaultSearchTimeout = 30 * time.Second

// SearchResult is a single hit produced by one data source.
// Results are immutable once returned by a source.
type SearchResult struct {
	// Source is the name of the data source that produced the result.
	Source string `json:"source"`

	// Title is the display title of the result.
	Title string `json:"title"`

	// Content is the body or snippet of the result.
	Content string `json:"content"`

	// RelevanceScore is the source-defined relevance, higher is more
	// relevant. No fixed upper bound is enforced.
	RelevanceScore float64 `json:"relevanceScore"`

	// URL is an optional link to the original item.
	URL string `json:"url,omitempty"`

	// Metadata carries source-specific fields, opaque to the core.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// DedupKey identifies equivalent results across and within sources.
func (r SearchResult) DedupKey() string {
	return r.Title + "\x00" + r.Source
}

// ProgressStatus is the state reported by a progress event.
type ProgressStatus string

const (
	// StatusSearching is emitted when a source's search starts.
	StatusSearching ProgressStatus = "searching"

	// StatusCompleted is emitted when a source's search succeeds.
	StatusCompleted ProgressStatus = "completed"

	// StatusError is emitted when a source's search fails.
	StatusError ProgressStatus = "error"
)

// SearchProgress is a point-in-time event about one source's search
// operation. The core keeps no history of emitted events.
type SearchProgress struct {
	// Source is the name of the data source the event concerns.
	Source string `json:"source"`

	// Status is the state of the operation.
	Status ProgressStatus `json:"status"`

	// ResultCount is set only when Status is StatusCompleted.
	ResultCount *int `json:"resultCount,omitempty"`
}

// SearchOptions configures a multi-source search.
type SearchOptions struct {
	// MaxResults caps the number of formatted entries. Zero or negative
	// means DefaultMaxResults.
	MaxResults int

	// Timeout bounds each source's search operation. Zero means
	// DefaultSearchTimeout.
	Timeout time.Duration
}

// EffectiveTimeout returns the per-source timeout to apply.
func (o SearchOptions) EffectiveTimeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultSearchTimeout
	}
	return o.Timeout
}
