package actor

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
)

// Session cookie layout.
const (
	SessionName = "pins_actor"
	sessionKey  = "actor_id"
)

// Resolver attaches the requesting actor to the request context.
type Resolver struct {
	sessions sessions.Store
	verifier *Verifier
	logger   *slog.Logger
}

// NewResolver creates a resolver. Either source may be nil to disable it.
func NewResolver(store sessions.Store, verifier *Verifier, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{sessions: store, verifier: verifier, logger: logger}
}

// Middleware resolves the actor for every request. Unidentified requests
// continue as anonymous; rejecting them is up to the permission layer.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a := res.Resolve(r); a != nil {
			r = r.WithContext(WithActor(r.Context(), a))
		}
		next.ServeHTTP(w, r)
	})
}

// Resolve returns the actor for a request, or nil if it is anonymous.
// The session cookie wins over a bearer token.
func (res *Resolver) Resolve(r *http.Request) *Actor {
	if res.sessions != nil {
		session, err := res.sessions.Get(r, SessionName)
		if err != nil {
			res.logger.Debug("ignoring unreadable session", slog.String("error", err.Error()))
		} else if id, ok := session.Values[sessionKey].(string); ok && id != "" {
			return &Actor{ID: id}
		}
	}

	if res.verifier != nil {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			return nil
		}
		a, err := res.verifier.Verify(token)
		if err != nil {
			res.logger.Debug("rejected bearer token", slog.String("error", err.Error()))
			return nil
		}
		return a
	}
	return nil
}

// CanLogin reports whether tokens can be exchanged for sessions.
func (res *Resolver) CanLogin() bool {
	return res.verifier != nil && res.sessions != nil
}

// Login stores the actor in the session cookie.
func (res *Resolver) Login(w http.ResponseWriter, r *http.Request, a *Actor) error {
	session, _ := res.sessions.Get(r, SessionName)
	session.Values[sessionKey] = a.ID
	return session.Save(r, w)
}

// Logout clears the session cookie.
func (res *Resolver) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := res.sessions.Get(r, SessionName)
	delete(session.Values, sessionKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// LoginHandler exchanges a signed token for a session cookie, then redirects
// to "next" or fallback. The token is read from the POST form body only so it
// never appears in a URL.
func (res *Resolver) LoginHandler(fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !res.CanLogin() {
			http.Error(w, "login is not configured", http.StatusNotFound)
			return
		}
		a, err := res.verifier.Verify(r.PostFormValue("token"))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if err := res.Login(w, r, a); err != nil {
			res.logger.Error("failed to save session", slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		res.logger.Info("actor logged in", slog.String("actor", a.ID))
		http.Redirect(w, r, redirectTarget(r, fallback), http.StatusSeeOther)
	}
}

// LogoutHandler clears the session and redirects to "next" or fallback.
func (res *Resolver) LogoutHandler(fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if res.sessions != nil {
			if err := res.Logout(w, r); err != nil {
				res.logger.Error("failed to clear session", slog.String("error", err.Error()))
			}
		}
		http.Redirect(w, r, redirectTarget(r, fallback), http.StatusSeeOther)
	}
}

func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// redirectTarget only follows local paths.
func redirectTarget(r *http.Request, fallback string) string {
	next := r.FormValue("next")
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return fallback
}
