package pins

import (
	"log/slog"
	"net/http"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/ui/features/common"
	"github.com/leapstack-labs/pins/internal/ui/features/pins/pages"
	"github.com/leapstack-labs/pins/pkg/core"
)

// Handlers provides HTTP handlers for the pins API.
type Handlers struct {
	store    core.PinStore
	basePath string
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store core.PinStore, basePath string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{store: store, basePath: basePath, logger: logger}
}

// GlobalPins lists every pin in display order.
func (h *Handlers) GlobalPins(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListPins(r.Context())
	if err != nil {
		common.WriteError(w, r, h.logger, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, common.NewData(items))
}

// Pin adds a resource to the homepage list.
func (h *Handlers) Pin(w http.ResponseWriter, r *http.Request) {
	req, err := ParsePin(http.MaxBytesReader(w, r.Body, common.MaxBodyBytes))
	if err != nil {
		common.WriteError(w, r, h.logger, err)
		return
	}

	a := actor.FromContext(r.Context())
	id, err := h.store.CreatePin(r.Context(), a.IDPtr(), req.ItemType, req.OriginDatabase, req.OriginTable)
	if err != nil {
		common.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.Info("pinned",
		slog.Int64("id", id),
		slog.Any("actor", a),
		slog.String("item_type", string(req.ItemType)),
		slog.String("origin_database", req.OriginDatabase))
	common.WriteOK(w, map[string]any{"id": id})
}

// Unpin removes a pin. Unknown ids succeed.
func (h *Handlers) Unpin(w http.ResponseWriter, r *http.Request) {
	id, err := ParseUnpin(http.MaxBytesReader(w, r.Body, common.MaxBodyBytes))
	if err != nil {
		common.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.store.DeletePin(r.Context(), id); err != nil {
		common.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.Info("unpinned", slog.Int64("id", id))
	common.WriteOK(w, nil)
}

// Reorder applies a batch of order assignments atomically.
func (h *Handlers) Reorder(w http.ResponseWriter, r *http.Request) {
	assignments, err := ParseReorder(http.MaxBytesReader(w, r.Body, common.MaxBodyBytes))
	if err != nil {
		common.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.store.ReorderPins(r.Context(), assignments); err != nil {
		common.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.Info("reordered pins", slog.Int("count", len(assignments)))
	common.WriteOK(w, nil)
}

// ReorderView renders the page for rearranging pins.
func (h *Handlers) ReorderView(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListPins(r.Context())
	if err != nil {
		h.logger.Error("failed to list pins", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ReorderPage(h.basePath, items).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render reorder view", slog.String("error", err.Error()))
	}
}
