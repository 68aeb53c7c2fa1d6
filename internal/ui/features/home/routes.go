package home

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/pins/internal/permission"
)

// Routes returns the home route table.
func Routes(h *Handlers) []permission.Route {
	return []permission.Route{
		{Method: http.MethodGet, Pattern: "/homepage", Requirement: permission.Public, Handler: h.Fragment},
		{Method: http.MethodGet, Pattern: "/api/homepage", Requirement: permission.Read, Handler: h.Items},
	}
}

// SetupRoutes configures routes for the home feature.
func SetupRoutes(router chi.Router, gate *permission.Gate, homepage *Homepage, basePath string, logger *slog.Logger) error {
	gate.Mount(router, Routes(NewHandlers(homepage, gate.Evaluator(), basePath, logger)))
	return nil
}
