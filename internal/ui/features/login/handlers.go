// Package login exchanges actor tokens for browser sessions.
package login

import (
	"log/slog"
	"net/http"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/ui/features/login/pages"
)

// Handlers provides HTTP handlers for the login feature.
type Handlers struct {
	resolver *actor.Resolver
	basePath string
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(resolver *actor.Resolver, basePath string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{resolver: resolver, basePath: basePath, logger: logger}
}

// Form renders the sign-in form. Tokens in the query string are ignored.
func (h *Handlers) Form(w http.ResponseWriter, r *http.Request) {
	if !h.resolver.CanLogin() {
		http.Error(w, "login is not configured", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.LoginPage(h.basePath, r.URL.Query().Get("next")).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render login form", slog.String("error", err.Error()))
	}
}

// Login reads the token from the posted form.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	h.resolver.LoginHandler(h.basePath+"/")(w, r)
}

// Logout clears the session.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.resolver.LogoutHandler(h.basePath+"/")(w, r)
}
