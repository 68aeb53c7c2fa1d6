// Package actor identifies who is making a request.
//
// An actor is resolved from a signed session cookie or, failing that, from an
// HS256 bearer token. Requests without either are anonymous and carry no actor.
package actor

import (
	"context"
	"log/slog"
)

// Actor is an authenticated identity.
type Actor struct {
	ID string `json:"id"`
}

// IDPtr returns the actor id as a nullable value. A nil actor yields nil.
func (a *Actor) IDPtr() *string {
	if a == nil {
		return nil
	}
	id := a.ID
	return &id
}

// LogValue implements slog.LogValuer.
func (a *Actor) LogValue() slog.Value {
	if a == nil {
		return slog.StringValue("anonymous")
	}
	return slog.StringValue(a.ID)
}

type contextKey struct{}

// WithActor returns a new context carrying the actor.
func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext retrieves the actor from the context, returning nil for anonymous requests.
func FromContext(ctx context.Context) *Actor {
	a, ok := ctx.Value(contextKey{}).(*Actor)
	if !ok {
		return nil
	}
	return a
}
