package nodelens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodelens/nodelens/pkg/config"
	"github.com/nodelens/nodelens/pkg/driver"
	"github.com/nodelens/nodelens/pkg/search"
	"github.com/nodelens/nodelens/pkg/types"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(Options{Store: driver.NewMemoryStore()})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresStore(t *testing.T) {
	_, err := NewClient(Options{})
	assert.Error(t, err)
}

func TestClientRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	defer client.Close(ctx)

	id, err := client.UpsertRecord(ctx, &types.Record{
		Labels: []string{"Device"},
		Properties: map[string]types.Value{
			"name": types.StringValue("edge router"),
		},
	})
	require.NoError(t, err)

	record, err := client.GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Device"}, record.Labels)

	result, err := client.Search(ctx, "edge router", search.RawFilters{}, 10)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalMatches)
	assert.Equal(t, id, result.Results[0].Uuid)

	labels, err := client.ListLabels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Device"}, labels)

	require.NoError(t, client.RemoveRecord(ctx, id))
	_, err = client.GetRecord(ctx, id)
	assert.ErrorIs(t, err, driver.ErrRecordNotFound)
}

func TestClientCustomPolicy(t *testing.T) {
	ctx := context.Background()
	store := driver.NewMemoryStore()

	_, err := store.UpsertRecord(ctx, &types.Record{
		Uuid:   "u1",
		Labels: []string{"Hidden"},
		Properties: map[string]types.Value{
			"name": types.StringValue("target"),
		},
	})
	require.NoError(t, err)

	policy := search.DefaultPolicy()
	policy.BlacklistedLabels = []string{"Hidden"}
	client, err := NewClient(Options{Store: store, Policy: &policy})
	require.NoError(t, err)

	result, err := client.Search(ctx, "target", search.RawFilters{}, 10)
	require.NoError(t, err)
	assert.Zero(t, result.TotalMatches)
}

func TestOpenStoreFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "memory"

	store, err := OpenStore(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, driver.StoreProviderMemory, store.Provider())

	cfg.CircuitBreaker.Enabled = true
	cfg.CircuitBreaker.ReadyToTripRatio = 0.6
	store, err = OpenStore(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, driver.StoreProviderMemory, store.Provider())

	cfg.Database.Driver = "bogus"
	_, err = OpenStore(cfg, nil)
	assert.Error(t, err)
}
