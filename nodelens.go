package nodelens

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nodelens/nodelens/pkg/config"
	"github.com/nodelens/nodelens/pkg/driver"
	"github.com/nodelens/nodelens/pkg/logger"
	"github.com/nodelens/nodelens/pkg/search"
	"github.com/nodelens/nodelens/pkg/types"
)

// NodeLens is the main interface for searching and maintaining a labeled
// property graph. Searches rank records by textual relevance against their
// property values, honoring the configured label and property policy.
type NodeLens interface {
	// Search ranks records matching the query, applying structural filters
	// and truncating to limit.
	Search(ctx context.Context, query string, filters search.RawFilters, limit int) (*search.SearchResult, error)

	// GetRecord retrieves a specific record from the graph.
	GetRecord(ctx context.Context, uuid string) (*types.Record, error)

	// UpsertRecord creates or updates a record and returns its uuid.
	UpsertRecord(ctx context.Context, record *types.Record) (string, error)

	// RemoveRecord deletes a record and its relationships.
	RemoveRecord(ctx context.Context, uuid string) error

	// ListLabels returns the distinct labels present in the graph.
	ListLabels(ctx context.Context) ([]string, error)

	// Close closes all connections and cleans up resources.
	Close(ctx context.Context) error
}

// Client is the main implementation of the NodeLens interface.
type Client struct {
	store    driver.RecordStore
	searcher *search.Searcher
	policy   search.Policy
	logger   *slog.Logger
}

// Options configures a Client.
type Options struct {
	// Store is the backing record store. Required.
	Store driver.RecordStore
	// Policy controls blacklisted labels, priority keys, and sensitive keys.
	// Zero value selects the default policy.
	Policy *search.Policy
	// Logger receives engine logs. Defaults to a text logger at info level.
	Logger *slog.Logger
}

// NewClient creates a NodeLens client over the given store.
func NewClient(opts Options) (*Client, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}

	policy := search.DefaultPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(slog.LevelInfo)
	}

	return &Client{
		store:    opts.Store,
		searcher: search.NewSearcher(opts.Store, policy, log),
		policy:   policy,
		logger:   log,
	}, nil
}

// NewClientFromConfig builds a client, store included, from configuration.
func NewClientFromConfig(cfg *config.Config, log *slog.Logger) (*Client, error) {
	store, err := OpenStore(cfg, log)
	if err != nil {
		return nil, err
	}
	return NewClient(Options{
		Store:  store,
		Policy: policyFromConfig(cfg),
		Logger: log,
	})
}

// OpenStore opens the record store named by the configuration, wrapping it
// with a circuit breaker when enabled.
func OpenStore(cfg *config.Config, log *slog.Logger) (driver.RecordStore, error) {
	var store driver.RecordStore
	switch cfg.Database.Driver {
	case "neo4j":
		neo, err := driver.NewNeo4jStore(
			cfg.Database.URI,
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Database,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open neo4j store: %w", err)
		}
		store = neo
	case "memory", "":
		store = driver.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	if cfg.CircuitBreaker.Enabled {
		store = driver.NewBreakerStore(store, driver.BreakerSettings{
			MaxRequests:      cfg.CircuitBreaker.MaxRequests,
			Interval:         cfg.CircuitBreaker.Interval,
			Timeout:          cfg.CircuitBreaker.Timeout,
			ReadyToTripRatio: cfg.CircuitBreaker.ReadyToTripRatio,
		}, log)
	}
	return store, nil
}

// policyFromConfig maps the search configuration onto a policy, falling back
// to the default for any list left empty.
func policyFromConfig(cfg *config.Config) *search.Policy {
	policy := search.DefaultPolicy()
	if len(cfg.Search.BlacklistedLabels) > 0 {
		policy.BlacklistedLabels = cfg.Search.BlacklistedLabels
	}
	if len(cfg.Search.PriorityKeys) > 0 {
		policy.PriorityKeys = cfg.Search.PriorityKeys
	}
	if len(cfg.Search.SensitiveKeys) > 0 {
		policy.SensitiveKeys = cfg.Search.SensitiveKeys
	}
	return &policy
}

// Store exposes the underlying record store.
func (c *Client) Store() driver.RecordStore {
	return c.store
}

// Searcher exposes the configured search engine.
func (c *Client) Searcher() *search.Searcher {
	return c.searcher
}

// Search ranks records matching the query.
func (c *Client) Search(ctx context.Context, query string, filters search.RawFilters, limit int) (*search.SearchResult, error) {
	return c.searcher.Search(ctx, query, filters, limit)
}

// GetRecord retrieves a specific record from the graph.
func (c *Client) GetRecord(ctx context.Context, uuid string) (*types.Record, error) {
	return c.store.GetRecord(ctx, uuid)
}

// UpsertRecord creates or updates a record and returns its uuid.
func (c *Client) UpsertRecord(ctx context.Context, record *types.Record) (string, error) {
	return c.store.UpsertRecord(ctx, record)
}

// RemoveRecord deletes a record and its relationships.
func (c *Client) RemoveRecord(ctx context.Context, uuid string) error {
	return c.store.DeleteRecord(ctx, uuid)
}

// ListLabels returns the distinct labels present in the graph.
func (c *Client) ListLabels(ctx context.Context) ([]string, error) {
	return c.store.ListLabels(ctx)
}

// Close closes all connections and cleans up resources.
func (c *Client) Close(ctx context.Context) error {
	return c.store.Close(ctx)
}

var _ NodeLens = (*Client)(nil)
