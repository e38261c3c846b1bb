package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driving"
	"github.com/queryspan-labs/queryspan-cli/internal/logger"
)

// Ensure QueryOrchestrator implements the interface.
var _ driving.QueryService = (*QueryOrchestrator)(nil)

// sourceOutcome is the explicit result of one source's search operation.
// A failed source contributes an empty result list, never an overall error.
type sourceOutcome struct {
	results []domain.SearchResult
	err     error
}

// QueryOrchestrator fans a query out to multiple data sources in
// parallel, isolates per-source failures, and merges the results into
// one ranked, deduplicated list.
type QueryOrchestrator struct {
	sources []driven.DataSource
}

// NewQueryOrchestrator creates an orchestrator over the given sources.
// The source list is fixed for the orchestrator's lifetime; there is no
// process-wide registry.
func NewQueryOrchestrator(sources []driven.DataSource) *QueryOrchestrator {
	return &QueryOrchestrator{sources: sources}
}

// Sources returns the configured data sources in enumeration order.
func (o *QueryOrchestrator) Sources() []driven.DataSource {
	return o.sources
}

// Search performs a multi-source search.
//
// Sources whose relevance predicate matches the query are searched; if
// none match, every configured source is searched. One goroutine is
// launched per selected source and all are joined before ranking, so
// the merged list preserves source enumeration order and per-source
// return order regardless of which source finishes first.
func (o *QueryOrchestrator) Search(
	ctx context.Context, query string, opts domain.SearchOptions, onProgress driving.ProgressFunc,
) ([]domain.SearchResult, error) {
	logger.Section("Multi-Source Search")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", domain.ErrInvalidInput)
	}
	if len(o.sources) == 0 {
		return nil, domain.ErrNoSources
	}

	selected := o.relevantSources(query)
	logger.Info("Searching across: %s", joinNames(selected))

	outcomes := o.executeSearches(ctx, selected, query, opts, onProgress)

	// Flatten in enumeration order, never completion order.
	var merged []domain.SearchResult
	for _, oc := range outcomes {
		merged = append(merged, oc.results...)
	}
	logger.Debug("Merged results: %d", len(merged))

	ranked := rankResults(merged)
	logger.Debug("Ranked results after dedup: %d", len(ranked))

	return ranked, nil
}

// SearchSource runs the query against a single named source.
// Source names are matched case-insensitively with spaces treated as
// hyphens, so "google-drive" matches "Google Drive".
func (o *QueryOrchestrator) SearchSource(
	ctx context.Context, sourceName, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", domain.ErrInvalidInput)
	}

	var source driven.DataSource
	for _, ds := range o.sources {
		if sourceSlug(ds.Name()) == sourceSlug(sourceName) {
			source = ds
			break
		}
	}
	if source == nil {
		available := joinNames(o.sources)
		if available == "" {
			available = "none"
		}
		return nil, fmt.Errorf("%w: %q (available sources: %s)",
			domain.ErrSourceNotFound, sourceName, available)
	}

	searchCtx, cancel := context.WithTimeout(ctx, opts.EffectiveTimeout())
	defer cancel()

	results, err := source.Search(searchCtx, query)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", source.Name(), err)
	}

	return rankResults(results), nil
}

// relevantSources evaluates each source's relevance predicate and
// returns the matching subset, falling back to all configured sources
// when nothing matches. A query never silently searches nothing.
func (o *QueryOrchestrator) relevantSources(query string) []driven.DataSource {
	var relevant []driven.DataSource
	for _, ds := range o.sources {
		if isRelevant(ds, query) {
			relevant = append(relevant, ds)
		}
	}

	if len(relevant) == 0 {
		logger.Debug("No source claimed relevance, falling back to all %d sources", len(o.sources))
		return o.sources
	}
	return relevant
}

// isRelevant evaluates a source's relevance predicate.
// A panicking predicate counts as not relevant.
func isRelevant(ds driven.DataSource, query string) (relevant bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Relevance predicate for %s panicked: %v", ds.Name(), r)
			relevant = false
		}
	}()
	return ds.IsRelevantFor(query)
}

// executeSearches fans out one goroutine per source and joins all of
// them before returning. Outcomes are written into a slice indexed by
// the source's enumeration position so the merge order is deterministic.
// Progress events are emitted as operations actually start and finish;
// the sink is serialized with a mutex since goroutines call it directly.
func (o *QueryOrchestrator) executeSearches(
	ctx context.Context,
	sources []driven.DataSource,
	query string,
	opts domain.SearchOptions,
	onProgress driving.ProgressFunc,
) []sourceOutcome {
	outcomes := make([]sourceOutcome, len(sources))

	var progressMu sync.Mutex
	emit := func(p domain.SearchProgress) {
		if onProgress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		onProgress(p)
	}

	var wg sync.WaitGroup
	for i, ds := range sources {
		wg.Add(1)
		go func(i int, ds driven.DataSource) {
			defer wg.Done()
			outcomes[i] = o.searchOne(ctx, ds, query, opts, emit)
		}(i, ds)
	}
	wg.Wait()

	return outcomes
}

// searchOne runs a single source's search with a bounded timeout and
// reports its progress. A failure is recorded in the outcome and logged;
// it never aborts sibling searches.
func (o *QueryOrchestrator) searchOne(
	ctx context.Context,
	ds driven.DataSource,
	query string,
	opts domain.SearchOptions,
	emit func(domain.SearchProgress),
) sourceOutcome {
	emit(domain.SearchProgress{Source: ds.Name(), Status: domain.StatusSearching})

	searchCtx, cancel := context.WithTimeout(ctx, opts.EffectiveTimeout())
	defer cancel()

	results, err := ds.Search(searchCtx, query)
	if err != nil {
		logger.Warn("Error searching %s: %v", ds.Name(), err)
		emit(domain.SearchProgress{Source: ds.Name(), Status: domain.StatusError})
		return sourceOutcome{err: err}
	}

	count := len(results)
	emit(domain.SearchProgress{
		Source:      ds.Name(),
		Status:      domain.StatusCompleted,
		ResultCount: &count,
	})
	return sourceOutcome{results: results}
}

// rankResults stably sorts results by relevance score descending, then
// removes duplicates by (title, source), keeping the highest-ranked
// occurrence. Ties preserve the relative order of the input list.
func rankResults(results []domain.SearchResult) []domain.SearchResult {
	sorted := make([]domain.SearchResult, len(results))
	copy(sorted, results)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RelevanceScore > sorted[j].RelevanceScore
	})

	seen := make(map[string]bool, len(sorted))
	unique := make([]domain.SearchResult, 0, len(sorted))
	for _, r := range sorted {
		key := r.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, r)
	}

	return unique
}

// FormatResults renders a bounded summary of an already-ranked result
// list. Results are grouped by source in the order each source first
// appears within the truncated window; a source whose entries all rank
// below the cutoff is absent from the output entirely.
func (o *QueryOrchestrator) FormatResults(results []domain.SearchResult, maxResults int) string {
	if len(results) == 0 {
		return "No results found across any data sources."
	}

	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}
	top := results
	if len(top) > maxResults {
		top = top[:maxResults]
	}

	groupOrder, groups := groupBySource(top)

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results across %d sources:\n\n", len(results), len(groupOrder))

	for _, source := range groupOrder {
		items := groups[source]
		fmt.Fprintf(&b, "**%s** (%d results):\n", source, len(items))
		for _, item := range items {
			fmt.Fprintf(&b, "- **%s**\n", item.Title)
			fmt.Fprintf(&b, "  %s\n", item.Content)
			if item.URL != "" {
				fmt.Fprintf(&b, "  %s\n", item.URL)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// groupBySource buckets results by source, preserving the order in
// which each source first appears.
func groupBySource(results []domain.SearchResult) ([]string, map[string][]domain.SearchResult) {
	var order []string
	groups := make(map[string][]domain.SearchResult)

	for _, r := range results {
		if _, ok := groups[r.Source]; !ok {
			order = append(order, r.Source)
		}
		groups[r.Source] = append(groups[r.Source], r)
	}

	return order, groups
}

// sourceSlug normalises a source name for lookup: lower case, spaces as
// hyphens. "Google Drive" becomes "google-drive".
func sourceSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// joinNames renders source names as a comma-separated list.
func joinNames(sources []driven.DataSource) string {
	names := make([]string, len(sources))
	for i, ds := range sources {
		names[i] = ds.Name()
	}
	return strings.Join(names, ", ")
}
