package actions

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/pins/internal/permission"
)

// Routes returns the actions route table. The routes are public; the
// provider itself hides the affordance from actors without access.
func Routes(h *Handlers) []permission.Route {
	return []permission.Route{
		{Method: http.MethodGet, Pattern: "/api/actions", Requirement: permission.Public, Handler: h.Actions},
		{Method: http.MethodGet, Pattern: "/api/actions/button", Requirement: permission.Public, Handler: h.ActionButton},
	}
}

// SetupRoutes configures routes for the actions feature.
func SetupRoutes(router chi.Router, gate *permission.Gate, provider *Provider, logger *slog.Logger) error {
	gate.Mount(router, Routes(NewHandlers(provider, logger)))
	return nil
}
