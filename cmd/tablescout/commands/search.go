// ABOUTME: CLI command to query the restaurant index directly
// ABOUTME: Debugging aid that skips intent classification and reply generation
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var searchLimit int

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the restaurant index",
		Long: `Search the restaurant index directly by semantic similarity.

Bypasses intent classification and reply generation; useful for
inspecting what the retrieval layer returns for a query.

Examples:
  tablescout search "spicy Thai downtown"
  tablescout search --limit 10 "outdoor seating brunch"
  tablescout search --format json "sushi"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	query := args[0]
	results, err := rt.store.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("searching index: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No restaurants found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tNAME\tPRICE\tLOCATION\n")
	fmt.Fprintf(w, "-----\t----\t-----\t--------\n")
	for _, result := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			result.Score,
			truncate(result.Metadata.Name, 30),
			result.Metadata.Price,
			truncate(result.Metadata.Location, 50))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}
