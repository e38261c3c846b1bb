// Package cli implements the queryspan command-line interface. Commands
// are driven through the core's driving ports, injected by main via
// SetServices.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driving"
	"github.com/queryspan-labs/queryspan-cli/internal/logger"
)

// version is the CLI version, overridable at build time.
var version = "0.1.0"

// verbose enables debug logging.
var verbose bool

// Service globals injected by main. Commands check for nil and return a
// descriptive error when a service is missing.
var (
	queryService  driving.QueryService
	userService   driving.UserService
	userBackend   string
	searchTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "queryspan",
	Short: "Search across multiple data sources from one place",
	Long: `Queryspan fans a single query out to all configured data sources
(Slack, GitHub, Google Drive, local files), merges the results, and ranks
them by relevance. It also runs as an MCP server for AI assistants.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services bundles the driving ports the CLI needs.
type Services struct {
	Query driving.QueryService
	User  driving.UserService

	// UserBackend names the active user store for display.
	UserBackend string

	// SearchTimeout bounds each source's search. Zero means the
	// built-in default.
	SearchTimeout time.Duration
}

// SetServices injects the core services into the CLI commands.
func SetServices(s *Services) {
	queryService = s.Query
	userService = s.User
	userBackend = s.UserBackend
	searchTimeout = s.SearchTimeout
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
