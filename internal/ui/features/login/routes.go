package login

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/permission"
)

// Routes returns the login route table. Tokens are only accepted by POST.
func Routes(h *Handlers) []permission.Route {
	return []permission.Route{
		{Method: http.MethodGet, Pattern: "/login", Requirement: permission.Public, Handler: h.Form},
		{Method: http.MethodPost, Pattern: "/login", Requirement: permission.Public, Handler: h.Login},
		{Method: http.MethodGet, Pattern: "/logout", Requirement: permission.Public, Handler: h.Logout},
	}
}

// SetupRoutes configures routes for the login feature.
func SetupRoutes(router chi.Router, gate *permission.Gate, resolver *actor.Resolver, basePath string, logger *slog.Logger) error {
	gate.Mount(router, Routes(NewHandlers(resolver, basePath, logger)))
	return nil
}
