package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/queryspan-labs/queryspan-cli/internal/adapters/driving/tui"
	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
)

var (
	searchLimit       int
	searchJSON        bool
	searchSource      string
	searchInteractive bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search across all configured data sources",
	Long: `Fans the query out to all relevant data sources concurrently, then
merges, deduplicates, and ranks the results by relevance score.

Use --source to search a single source, or --interactive to launch the
live search view.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultMaxResults, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVarP(&searchSource, "source", "s", "", "search a single source, e.g. slack or github")
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "launch the interactive search view")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	opts := domain.SearchOptions{MaxResults: searchLimit, Timeout: searchTimeout}

	if searchInteractive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("interactive mode requires a terminal")
		}
		return tui.Run(cmd.Context(), queryService, opts)
	}

	if len(args) == 0 {
		return errors.New("a query is required unless --interactive is set")
	}
	query := args[0]

	if searchSource != "" {
		results, err := queryService.SearchSource(cmd.Context(), searchSource, query, opts)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return outputResults(cmd, results)
	}

	onProgress := func(p domain.SearchProgress) {
		if searchJSON {
			return
		}
		line := fmt.Sprintf("%s: %s", p.Source, p.Status)
		if p.ResultCount != nil {
			line += fmt.Sprintf(" (%d results)", *p.ResultCount)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), line)
	}

	results, err := queryService.Search(cmd.Context(), query, opts, onProgress)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return outputResults(cmd, results)
}

func outputResults(cmd *cobra.Command, results []domain.SearchResult) error {
	if searchJSON {
		return outputResultsJSON(cmd, results)
	}

	cmd.Println(queryService.FormatResults(results, searchLimit))
	return nil
}

func outputResultsJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
