package permission

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/pins/internal/actor"
)

// Route pairs a method and path with the capability it needs.
type Route struct {
	Method      string
	Pattern     string
	Requirement Requirement
	Handler     http.HandlerFunc
}

// Gate enforces route requirements before handlers run.
type Gate struct {
	evaluator Evaluator
	logger    *slog.Logger
}

// NewGate creates a gate backed by the evaluator.
func NewGate(e Evaluator, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gate{evaluator: e, logger: logger}
}

// Evaluator returns the gate's evaluator.
func (g *Gate) Evaluator() Evaluator {
	return g.evaluator
}

// Require returns middleware that answers 403 unless the requesting actor
// satisfies req.
func (g *Gate) Require(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a := actor.FromContext(r.Context())
			if !Satisfied(r.Context(), g.evaluator, a, req) {
				g.logger.Debug("permission denied",
					slog.String("path", r.URL.Path),
					slog.String("requirement", req.String()),
					slog.Any("actor", a))
				writeForbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Mount registers the route table on r. For every path the capability check
// runs first; a request with an unsupported method then gets an empty 405.
func (g *Gate) Mount(r chi.Router, routes []Route) {
	var patterns []string
	byPattern := make(map[string][]Route)
	for _, rt := range routes {
		if _, ok := byPattern[rt.Pattern]; !ok {
			patterns = append(patterns, rt.Pattern)
		}
		byPattern[rt.Pattern] = append(byPattern[rt.Pattern], rt)
	}

	for _, pattern := range patterns {
		r.Handle(pattern, g.dispatch(byPattern[pattern]))
	}
}

func (g *Gate) dispatch(routes []Route) http.Handler {
	methods := make([]string, 0, len(routes))
	strictest := Public
	for _, rt := range routes {
		methods = append(methods, rt.Method)
		strictest = max(strictest, rt.Requirement)
	}
	slices.Sort(methods)
	allow := strings.Join(methods, ", ")

	var methodNotAllowed http.Handler = g.Require(strictest)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", allow)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))

	handlers := make(map[string]http.Handler, len(routes))
	for _, rt := range routes {
		handlers[rt.Method] = g.Require(rt.Requirement)(rt.Handler)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.Method]; ok {
			h.ServeHTTP(w, r)
			return
		}
		methodNotAllowed.ServeHTTP(w, r)
	})
}

func writeForbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"ok":false,"error":"forbidden"}` + "\n"))
}
