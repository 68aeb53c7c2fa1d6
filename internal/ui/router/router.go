// Package router sets up HTTP routes for the pins server.
package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/metadata"
	"github.com/leapstack-labs/pins/internal/permission"
	actionsFeature "github.com/leapstack-labs/pins/internal/ui/features/actions"
	homeFeature "github.com/leapstack-labs/pins/internal/ui/features/home"
	loginFeature "github.com/leapstack-labs/pins/internal/ui/features/login"
	pinsFeature "github.com/leapstack-labs/pins/internal/ui/features/pins"
	"github.com/leapstack-labs/pins/internal/ui/resources"
	"github.com/leapstack-labs/pins/pkg/core"
)

// Deps are the collaborators shared by every feature.
type Deps struct {
	Store     core.PinStore
	Evaluator permission.Evaluator
	Lookup    metadata.Lookup
	Resolver  *actor.Resolver
	BasePath  string
	Logger    *slog.Logger
}

// SetupRoutes mounts all features under deps.BasePath.
func SetupRoutes(router chi.Router, deps Deps) error {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.BasePath == "" {
		return setupFeatures(router, deps)
	}

	var err error
	router.Route(deps.BasePath, func(r chi.Router) {
		err = setupFeatures(r, deps)
	})
	return err
}

func setupFeatures(router chi.Router, deps Deps) error {
	base := deps.BasePath

	// Actor resolution runs before any permission check.
	router.Use(deps.Resolver.Middleware)

	// Static assets
	router.Handle("/static/*", resources.Handler(base+"/static/"))

	gate := permission.NewGate(deps.Evaluator, deps.Logger)

	if err := loginFeature.SetupRoutes(router, gate, deps.Resolver, base, deps.Logger); err != nil {
		return err
	}

	// Feature routes
	if err := pinsFeature.SetupRoutes(router, gate, deps.Store, base, deps.Logger); err != nil {
		return err
	}

	provider := actionsFeature.NewProvider(deps.Store, deps.Evaluator, base)
	if err := actionsFeature.SetupRoutes(router, gate, provider, deps.Logger); err != nil {
		return err
	}

	homepage := homeFeature.NewHomepage(deps.Store, deps.Evaluator, deps.Lookup, deps.Logger)
	if err := homeFeature.SetupRoutes(router, gate, homepage, base, deps.Logger); err != nil {
		return err
	}

	return nil
}
