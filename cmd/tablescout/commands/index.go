// ABOUTME: CLI command to build the restaurant index from a JSON catalog
// ABOUTME: Embeds every catalog record and replaces prior index contents
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/tablescout/internal/index"
)

var indexCatalog string

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the restaurant index",
		Long: `Build the restaurant retrieval index from a JSON catalog file.

Each restaurant record is rendered into a text document and embedded.
Existing index contents are replaced.

Examples:
  tablescout index
  tablescout index --catalog restaurant_data.json`,
		RunE: runIndex,
	}

	cmd.Flags().StringVar(&indexCatalog, "catalog", "", "Path to the restaurant catalog JSON (default from config)")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	catalogPath := indexCatalog
	if catalogPath == "" {
		catalogPath = rt.cfg.CatalogPath
	}

	docs, err := index.LoadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("catalog %s contains no restaurants", catalogPath)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexing %d restaurants...\n", len(docs))
	}

	if err := rt.store.Build(cmd.Context(), docs); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d restaurants\n", len(docs))
	}
	return nil
}
