package mcp

import (
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query orchestrates searches across the data sources.
	Query driving.QueryService

	// User manages user records. Optional; the user tools and the
	// users resource report an error when it is absent.
	User driving.UserService

	// UserBackend names the configured user store ("json", "sqlite",
	// "memory") for the sources resource.
	UserBackend string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
