package home

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/permission"
	"github.com/leapstack-labs/pins/internal/ui/features/common"
	"github.com/leapstack-labs/pins/internal/ui/features/home/pages"
	"github.com/leapstack-labs/pins/pkg/core"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	homepage  *Homepage
	evaluator permission.Evaluator
	basePath  string
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(homepage *Homepage, evaluator permission.Evaluator, basePath string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{homepage: homepage, evaluator: evaluator, basePath: basePath, logger: logger}
}

// Fragment renders the homepage block. Actors who cannot see pins get an
// empty 200 so hosts can inject the response unconditionally.
func (h *Handlers) Fragment(w http.ResponseWriter, r *http.Request) {
	a := actor.FromContext(r.Context())
	items, err := h.homepage.Items(r.Context(), a)
	if errors.Is(err, core.ErrPermissionDenied) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		h.logger.Error("failed to build homepage", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	canWrite := permission.Satisfied(r.Context(), h.evaluator, a, permission.Write)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Fragment(h.basePath, items, canWrite).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render homepage", slog.String("error", err.Error()))
	}
}

// Items returns the decorated pin list as JSON.
func (h *Handlers) Items(w http.ResponseWriter, r *http.Request) {
	items, err := h.homepage.Items(r.Context(), actor.FromContext(r.Context()))
	if err != nil {
		common.WriteError(w, r, h.logger, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, common.NewData(items))
}
