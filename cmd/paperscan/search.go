package main

import (
	"github.com/spf13/cobra"

	"github.com/Laam24/research-paper-extractor/internal/httputil"
	"github.com/Laam24/research-paper-extractor/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <topic>",
	Short: "Search academic engines for candidate papers",
	Long: `Search queries the configured engines for papers matching a topic and
prints the deduplicated results, without downloading anything. Use --json
for machine-readable output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 20, "maximum number of results to return")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	topic := args[0]
	for _, a := range args[1:] {
		topic += " " + a
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg := pipelineConfig(cmd, "").Search
	cfg.MaxResults = maxResults

	client := httputil.NewClient(cfg.HTTPConfig)
	backends := []search.Backend{
		&search.ScholarBackend{Client: client},
		&search.ArxivBackend{Client: client},
	}

	out, err := search.Search(cmd.Context(), topic, backends, cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if asJSON {
		return search.FormatJSON(out, cmd.OutOrStdout())
	}
	search.FormatTable(out, cmd.OutOrStdout())
	return nil
}
