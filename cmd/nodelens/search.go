package nodelens

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	nodelenslib "github.com/nodelens/nodelens"
	"github.com/nodelens/nodelens/pkg/config"
	nodelensLogger "github.com/nodelens/nodelens/pkg/logger"
	"github.com/nodelens/nodelens/pkg/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a one-shot relevance search against the graph",
	Long: `Run a single search against the configured store and print the ranked
results as JSON. Structural filters narrow the candidate set before scoring:

  nodelens search "edge router" --include-labels Device --property status:active`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var (
	searchIncludeLabels []string
	searchExcludeLabels []string
	searchProperties    []string
	searchLimit         int
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceVar(&searchIncludeLabels, "include-labels", nil, "Only records carrying at least one of these labels")
	searchCmd.Flags().StringSliceVar(&searchExcludeLabels, "exclude-labels", nil, "Records carrying any of these labels are dropped")
	searchCmd.Flags().StringSliceVar(&searchProperties, "property", nil, "Property filters as key:value pairs")
	searchCmd.Flags().IntVar(&searchLimit, "limit", search.DefaultLimit, "Maximum number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(nodelensLogger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	client, err := nodelenslib.NewClientFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize nodelens: %w", err)
	}
	ctx := context.Background()
	defer client.Close(ctx)

	result, err := client.Search(ctx, args[0], search.RawFilters{
		IncludeLabels:   searchIncludeLabels,
		ExcludeLabels:   searchExcludeLabels,
		PropertyFilters: searchProperties,
	}, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	fmt.Fprintf(os.Stderr, "%d of %d matches shown\n", result.Returned, result.TotalMatches)
	return nil
}
