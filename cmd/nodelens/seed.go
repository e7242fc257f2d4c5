package nodelens

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	nodelenslib "github.com/nodelens/nodelens"
	"github.com/nodelens/nodelens/pkg/config"
	nodelensLogger "github.com/nodelens/nodelens/pkg/logger"
	"github.com/nodelens/nodelens/pkg/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Load records from a YAML fixture file into the store",
	Long: `Load records from a YAML file into the configured store. The file holds a
list of records:

  - uuid: dev-1          # optional, generated when omitted
    labels: [Device]
    properties:
      name: edge router
      tags: [network, core]`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedRecord is the YAML shape of one fixture record.
type seedRecord struct {
	Uuid       string                 `yaml:"uuid"`
	Labels     []string               `yaml:"labels"`
	Properties map[string]interface{} `yaml:"properties"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read fixture file: %w", err)
	}

	var fixtures []seedRecord
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return fmt.Errorf("failed to parse fixture file: %w", err)
	}
	if len(fixtures) == 0 {
		return fmt.Errorf("fixture file contains no records")
	}

	logger := slog.New(nodelensLogger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	client, err := nodelenslib.NewClientFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize nodelens: %w", err)
	}
	ctx := context.Background()
	defer client.Close(ctx)

	for i, fixture := range fixtures {
		record := &types.Record{
			Uuid:       fixture.Uuid,
			Labels:     fixture.Labels,
			Properties: types.DecodeProperties(fixture.Properties),
		}
		id, err := client.UpsertRecord(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to load record %d: %w", i, err)
		}
		logger.Info("record loaded", "uuid", id, "labels", record.Labels)
	}

	fmt.Printf("Loaded %d records into %s store\n", len(fixtures), cfg.Database.Driver)
	return nil
}
