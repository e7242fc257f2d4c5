package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodelens/nodelens/pkg/search"
	"github.com/nodelens/nodelens/pkg/types"
)

// flakyStore fails QueryRecords while fail is set.
type flakyStore struct {
	*MemoryStore
	fail bool
}

func (f *flakyStore) QueryRecords(ctx context.Context, filters *search.SearchFilters) ([]*types.Record, error) {
	if f.fail {
		return nil, errors.New("connection refused")
	}
	return f.MemoryStore.QueryRecords(ctx, filters)
}

func TestBreakerStorePassesThrough(t *testing.T) {
	inner := &flakyStore{MemoryStore: seedMemoryStore(t)}
	store := NewBreakerStore(inner, DefaultBreakerSettings(), nil)

	got, err := store.QueryRecords(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	record, err := store.GetRecord(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", record.Uuid)

	labels, err := store.ListLabels(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, labels)

	assert.Equal(t, StoreProviderMemory, store.Provider())
	assert.NoError(t, store.Close(context.Background()))
}

func TestBreakerStoreOpensAfterFailures(t *testing.T) {
	inner := &flakyStore{MemoryStore: seedMemoryStore(t), fail: true}
	store := NewBreakerStore(inner, BreakerSettings{
		MaxRequests:      1,
		Interval:         60,
		Timeout:          60,
		ReadyToTripRatio: 0.6,
	}, nil)

	for i := 0; i < 5; i++ {
		_, err := store.QueryRecords(context.Background(), nil)
		require.Error(t, err)
	}

	// The breaker is now open: calls fail fast without hitting the store.
	inner.fail = false
	_, err := store.QueryRecords(context.Background(), nil)
	require.Error(t, err)
}

func TestBreakerStoreCRUDNotBroken(t *testing.T) {
	inner := &flakyStore{MemoryStore: seedMemoryStore(t), fail: true}
	store := NewBreakerStore(inner, BreakerSettings{
		MaxRequests:      1,
		Interval:         60,
		Timeout:          60,
		ReadyToTripRatio: 0.6,
	}, nil)

	for i := 0; i < 5; i++ {
		_, _ = store.QueryRecords(context.Background(), nil)
	}

	// CRUD bypasses the breaker so writes still work while queries trip.
	id, err := store.UpsertRecord(context.Background(), &types.Record{
		Labels:     []string{"Device"},
		Properties: map[string]types.Value{"name": types.StringValue("new")},
	})
	require.NoError(t, err)
	require.NoError(t, store.DeleteRecord(context.Background(), id))
}
