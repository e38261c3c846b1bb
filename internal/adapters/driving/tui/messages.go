package tui

import (
	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
)

// progressReceived carries one orchestrator progress event to the model.
type progressReceived struct {
	progress domain.SearchProgress
}

// searchCompleted carries the merged results back to the model.
type searchCompleted struct {
	results []domain.SearchResult
	err     error
}
