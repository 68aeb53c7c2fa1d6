package state

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pins/internal/testutil"
	"github.com/leapstack-labs/pins/pkg/core"
)

// Set PINS_TEST_POSTGRES_DSN to run against a live server.
func setupPostgresStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := os.Getenv("PINS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PINS_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	store, err := OpenStore(ctx, Config{Driver: DriverPostgres, DSN: dsn}, testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.DB().ExecContext(ctx, "TRUNCATE global_pinned_items")
	require.NoError(t, err)
	return store
}

func TestPostgresStore_PinLifecycle(t *testing.T) {
	store := setupPostgresStore(t)
	ctx := context.Background()

	var ids []int64
	for _, table := range []string{"one", "two", "three"} {
		id, err := store.CreatePin(ctx, strPtr("alex"), core.ItemTypeTable, "fixtures", strPtr(table))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	dup, err := store.CreatePin(ctx, nil, core.ItemTypeTable, "fixtures", strPtr("two"))
	require.NoError(t, err)
	assert.Equal(t, ids[1], dup)

	dbPin, err := store.CreatePin(ctx, nil, core.ItemTypeDatabase, "fixtures", nil)
	require.NoError(t, err)
	found, ok, err := store.FindPin(ctx, core.ItemTypeDatabase, "fixtures", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dbPin, found)
	require.NoError(t, store.DeletePin(ctx, dbPin))

	require.NoError(t, store.ReorderPins(ctx, []core.OrderAssignment{
		{ID: ids[1], OrderIdx: 1},
		{ID: ids[2], OrderIdx: 2},
		{ID: ids[0], OrderIdx: 3},
		{ID: 999999, OrderIdx: 0},
	}))

	items, err := store.ListPins(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{ids[1], ids[2], ids[0]}, pinIDs(items))

	require.NoError(t, store.DeletePin(ctx, ids[0]))
	require.NoError(t, store.DeletePin(ctx, ids[0]))
	items, err = store.ListPins(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
