package actions

import (
	"log/slog"
	"net/http"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/ui/features/common"
	"github.com/leapstack-labs/pins/pkg/core"
)

// Handlers provides HTTP handlers for the actions feature.
type Handlers struct {
	provider *Provider
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(provider *Provider, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{provider: provider, logger: logger}
}

// resourceFromQuery reads item_type, database and table from the query string.
func resourceFromQuery(r *http.Request) core.Resource {
	q := r.URL.Query()
	res := core.Resource{
		Kind:     core.ItemType(q.Get("item_type")),
		Database: q.Get("database"),
	}
	if t := q.Get("table"); t != "" {
		res.Table = &t
	}
	return res
}

// Actions returns the action descriptor for a resource, or null.
func (h *Handlers) Actions(w http.ResponseWriter, r *http.Request) {
	action, err := h.provider.For(r.Context(), actor.FromContext(r.Context()), resourceFromQuery(r))
	if err != nil {
		common.WriteError(w, r, h.logger, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, common.NewData(action))
}

// ActionButton renders the action as an HTML fragment for navigation menus.
func (h *Handlers) ActionButton(w http.ResponseWriter, r *http.Request) {
	action, err := h.provider.For(r.Context(), actor.FromContext(r.Context()), resourceFromQuery(r))
	if err != nil {
		common.WriteError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Button(action).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render action button", slog.String("error", err.Error()))
	}
}
