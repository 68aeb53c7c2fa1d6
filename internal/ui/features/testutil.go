// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/permission"
	"github.com/leapstack-labs/pins/internal/state"
	"github.com/leapstack-labs/pins/internal/testutil"
	"github.com/leapstack-labs/pins/pkg/core"
)

// TestBasePath is the mount point used by feature tests.
const TestBasePath = "/-/pins"

// Test actors granted by TestPolicy.
const (
	ReaderID   = "alex"
	WriterID   = "root"
	StrangerID = "unknown"
)

// ErrStorage is returned by every FaultyStore method.
var ErrStorage = errors.New("disk I/O error")

// TestPin describes a pin to seed.
type TestPin struct {
	ItemType core.ItemType
	Database string
	Table    string
}

// SetupTestStore creates an in-memory store seeded with pins, returning it
// with the ids of the seeded pins in order.
func SetupTestStore(t *testing.T, pins ...TestPin) (core.PinStore, []int64) {
	t.Helper()

	store, err := state.OpenStore(context.Background(), state.Config{Driver: state.DriverSQLite, Path: ":memory:"}, testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	ids := make([]int64, 0, len(pins))
	for _, p := range pins {
		var table *string
		if p.Table != "" {
			table = &p.Table
		}
		id, err := store.CreatePin(context.Background(), nil, p.ItemType, p.Database, table)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return store, ids
}

// TestPolicy grants read-pins to ReaderID and write-pins to WriterID.
func TestPolicy() *permission.Policy {
	return permission.NewPolicy(map[string][]string{
		string(permission.ReadPins):  {ReaderID},
		string(permission.WritePins): {WriterID},
	})
}

// RequestAs attaches an actor to the request. An empty id leaves it anonymous.
func RequestAs(r *http.Request, actorID string) *http.Request {
	if actorID == "" {
		return r
	}
	return r.WithContext(actor.WithActor(r.Context(), &actor.Actor{ID: actorID}))
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

// FaultyStore is a PinStore whose every operation fails.
type FaultyStore struct {
	Calls int
}

var _ core.PinStore = (*FaultyStore)(nil)

func (f *FaultyStore) ListPins(context.Context) ([]core.PinnedItem, error) {
	f.Calls++
	return nil, ErrStorage
}

func (f *FaultyStore) CreatePin(context.Context, *string, core.ItemType, string, *string) (int64, error) {
	f.Calls++
	return 0, ErrStorage
}

func (f *FaultyStore) DeletePin(context.Context, int64) error {
	f.Calls++
	return ErrStorage
}

func (f *FaultyStore) ReorderPins(context.Context, []core.OrderAssignment) error {
	f.Calls++
	return ErrStorage
}

func (f *FaultyStore) FindPin(context.Context, core.ItemType, string, *string) (int64, bool, error) {
	f.Calls++
	return 0, false, ErrStorage
}

func (f *FaultyStore) Close() error { return nil }
