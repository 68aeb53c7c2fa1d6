package home

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/metadata"
	"github.com/leapstack-labs/pins/internal/permission"
	"github.com/leapstack-labs/pins/pkg/core"
)

// DefaultLookupConcurrency bounds concurrent metadata lookups.
const DefaultLookupConcurrency = 8

// Homepage aggregates the pin list for display.
type Homepage struct {
	store       core.PinStore
	evaluator   permission.Evaluator
	lookup      metadata.Lookup
	logger      *slog.Logger
	concurrency int
}

// NewHomepage creates a homepage aggregator. lookup may be nil.
func NewHomepage(store core.PinStore, evaluator permission.Evaluator, lookup metadata.Lookup, logger *slog.Logger) *Homepage {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Homepage{
		store:       store,
		evaluator:   evaluator,
		lookup:      lookup,
		logger:      logger,
		concurrency: DefaultLookupConcurrency,
	}
}

// Items lists pins in display order with their metadata attached.
// Actors without read or write access get core.ErrPermissionDenied.
func (h *Homepage) Items(ctx context.Context, a *actor.Actor) ([]Item, error) {
	if !permission.Satisfied(ctx, h.evaluator, a, permission.Read) {
		return nil, core.ErrPermissionDenied
	}

	pins, err := h.store.ListPins(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(pins))
	for i, p := range pins {
		items[i] = Item{PinnedItem: p}
	}
	if h.lookup == nil {
		return items, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)
	for i := range items {
		g.Go(func() error {
			p := items[i].PinnedItem
			entry, err := h.lookup.Lookup(gctx, p.OriginDatabase, p.OriginTable)
			if err != nil {
				h.logger.Warn("metadata lookup failed",
					slog.Int64("pin", p.ID),
					slog.String("database", p.OriginDatabase),
					slog.String("error", err.Error()))
				return nil
			}
			if !entry.IsZero() {
				items[i].Metadata = &entry
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
