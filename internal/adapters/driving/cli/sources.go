package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage data sources",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured data sources",
	RunE:  runSourcesList,
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	sources := queryService.Sources()
	if len(sources) == 0 {
		cmd.Println("No sources configured.")
		return nil
	}

	cmd.Println("Configured sources:")
	for _, src := range sources {
		cmd.Printf("  - %s\n", src.Name())
	}
	return nil
}
