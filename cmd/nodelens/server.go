package nodelens

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	nodelenslib "github.com/nodelens/nodelens"
	"github.com/nodelens/nodelens/pkg/auth"
	"github.com/nodelens/nodelens/pkg/config"
	nodelensLogger "github.com/nodelens/nodelens/pkg/logger"
	"github.com/nodelens/nodelens/pkg/server"
	"github.com/nodelens/nodelens/pkg/telemetry"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the NodeLens HTTP server",
	Long: `Start the NodeLens HTTP server to provide REST API access to the graph.

The server provides endpoints for:
- Searching records by relevance
- Managing records (create, read, delete)
- Listing labels
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")

	// Database flags
	serverCmd.Flags().String("db-driver", "memory", "Database driver (memory, neo4j)")
	serverCmd.Flags().String("db-uri", "bolt://localhost:7687", "Database URI")
	serverCmd.Flags().String("db-username", "", "Database username")
	serverCmd.Flags().String("db-password", "", "Database password")
	serverCmd.Flags().String("db-database", "", "Database name")

	// Telemetry flags
	serverCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for error telemetry")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	overrideConfigWithFlags(cmd, cfg)

	// Validate configuration
	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	// Open the record store and wire the search engine
	client, err := nodelenslib.NewClientFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize nodelens: %w", err)
	}
	logger.Info("store initialized", "driver", cfg.Database.Driver)

	// Optional bearer-token auth
	var authenticator *auth.Authenticator
	if cfg.Auth.Enabled {
		authenticator, err = auth.NewAuthenticator(
			cfg.Auth.Secret,
			time.Duration(cfg.Auth.TokenTTL)*time.Second,
			cfg.Auth.Users,
		)
		if err != nil {
			return fmt.Errorf("failed to initialize auth: %w", err)
		}
	}

	// Create and setup server
	srv := server.New(cfg, client.Store(), client.Searcher(), authenticator, logger)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("received signal", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Shutdown server
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		if err := client.Close(shutdownCtx); err != nil {
			return fmt.Errorf("store shutdown error: %w", err)
		}

		logger.Info("server stopped gracefully")
		return nil
	}
}

// buildLogger builds the process logger, layering the Parquet error sink on
// top of the color handler when a telemetry path is configured.
func buildLogger(cfg *config.Config) (*slog.Logger, error) {
	level := parseLogLevel(cfg.Log.Level)
	colorHandler := nodelensLogger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	if cfg.Telemetry.ParquetPath == "" {
		return slog.New(colorHandler), nil
	}

	parquetHandler, err := telemetry.NewParquetHandler(colorHandler, cfg.Telemetry.ParquetPath)
	if err != nil {
		fmt.Printf("Warning: Failed to initialize error tracking: %v\n", err)
		return slog.New(colorHandler), nil
	}
	return slog.New(parquetHandler), nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	// Server flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	// Database flags
	if cmd.Flags().Changed("db-driver") {
		cfg.Database.Driver, _ = cmd.Flags().GetString("db-driver")
	}
	if cmd.Flags().Changed("db-uri") {
		cfg.Database.URI, _ = cmd.Flags().GetString("db-uri")
	}
	if cmd.Flags().Changed("db-username") {
		cfg.Database.Username, _ = cmd.Flags().GetString("db-username")
	}
	if cmd.Flags().Changed("db-password") {
		cfg.Database.Password, _ = cmd.Flags().GetString("db-password")
	}
	if cmd.Flags().Changed("db-database") {
		cfg.Database.Database, _ = cmd.Flags().GetString("db-database")
	}

	// Telemetry flags
	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}
}

func validateServerConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}

	if cfg.Database.Driver == "neo4j" && cfg.Database.URI == "" {
		return fmt.Errorf("database URI is required")
	}

	if cfg.Search.DefaultLimit < 0 {
		return fmt.Errorf("invalid default limit: %d", cfg.Search.DefaultLimit)
	}
	return nil
}
