package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driving"
)

// Run starts the interactive search view and blocks until the user
// quits or the context is cancelled.
func Run(ctx context.Context, queryService driving.QueryService, opts domain.SearchOptions) error {
	if queryService == nil {
		return fmt.Errorf("tui: query service is required")
	}

	model := NewModel(ctx, queryService, opts)

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interactive search: %w", err)
	}
	return nil
}
