// Package pins provides the JSON API and reorder view for the shared pin list.
package pins

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/pins/internal/permission"
	"github.com/leapstack-labs/pins/pkg/core"
)

// Routes returns the pins route table.
func Routes(h *Handlers) []permission.Route {
	return []permission.Route{
		{Method: http.MethodGet, Pattern: "/api/global_pins", Requirement: permission.Read, Handler: h.GlobalPins},
		{Method: http.MethodPost, Pattern: "/api/pin", Requirement: permission.Write, Handler: h.Pin},
		{Method: http.MethodPost, Pattern: "/api/unpin", Requirement: permission.Write, Handler: h.Unpin},
		{Method: http.MethodPost, Pattern: "/api/reorder", Requirement: permission.Write, Handler: h.Reorder},
		{Method: http.MethodGet, Pattern: "/", Requirement: permission.Write, Handler: h.ReorderView},
	}
}

// SetupRoutes configures routes for the pins feature.
func SetupRoutes(router chi.Router, gate *permission.Gate, store core.PinStore, basePath string, logger *slog.Logger) error {
	gate.Mount(router, Routes(NewHandlers(store, basePath, logger)))
	return nil
}
