package driver

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/nodelens/nodelens/pkg/search"
	"github.com/nodelens/nodelens/pkg/types"
)

// BreakerSettings configures the circuit breaker around a record store.
type BreakerSettings struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval between closed-state count resets, in seconds.
	Interval int
	// Timeout before an open breaker transitions to half-open, in seconds.
	Timeout int
	// ReadyToTripRatio is the failure ratio that opens the breaker.
	ReadyToTripRatio float64
}

// DefaultBreakerSettings returns conservative defaults.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      3,
		Interval:         60,
		Timeout:          30,
		ReadyToTripRatio: 0.6,
	}
}

// BreakerStore wraps a RecordStore with circuit breaking so a failing graph
// database trips fast instead of piling up timed-out searches. Only the query
// path goes through the breaker; CRUD failures are already surfaced to a
// single caller and gain nothing from tripping.
type BreakerStore struct {
	store RecordStore
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerStore wraps store with a circuit breaker.
func NewBreakerStore(store RecordStore, settings BreakerSettings, logger *slog.Logger) *BreakerStore {
	if logger == nil {
		logger = slog.Default()
	}

	st := gobreaker.Settings{
		Name:        "record-store",
		MaxRequests: settings.MaxRequests,
		Interval:    time.Duration(settings.Interval) * time.Second,
		Timeout:     time.Duration(settings.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= settings.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("record store circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerStore{
		store: store,
		cb:    gobreaker.NewCircuitBreaker(st),
	}
}

// QueryRecords executes the filter through the breaker.
func (b *BreakerStore) QueryRecords(ctx context.Context, filters *search.SearchFilters) ([]*types.Record, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.store.QueryRecords(ctx, filters)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*types.Record), nil
}

func (b *BreakerStore) GetRecord(ctx context.Context, uuid string) (*types.Record, error) {
	return b.store.GetRecord(ctx, uuid)
}

func (b *BreakerStore) UpsertRecord(ctx context.Context, record *types.Record) (string, error) {
	return b.store.UpsertRecord(ctx, record)
}

func (b *BreakerStore) DeleteRecord(ctx context.Context, uuid string) error {
	return b.store.DeleteRecord(ctx, uuid)
}

func (b *BreakerStore) ListLabels(ctx context.Context) ([]string, error) {
	return b.store.ListLabels(ctx)
}

func (b *BreakerStore) Provider() StoreProvider {
	return b.store.Provider()
}

func (b *BreakerStore) Close(ctx context.Context) error {
	return b.store.Close(ctx)
}

var _ RecordStore = (*BreakerStore)(nil)
