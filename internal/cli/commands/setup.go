package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pins/internal/cli/config"
	"github.com/leapstack-labs/pins/internal/state"
)

// configKey is used to store config in context.
type configKey struct{}

// WithConfig stores the loaded configuration in ctx.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// getConfig returns the configuration loaded by the root command, or the
// defaults when none was loaded.
func getConfig(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.Default()
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *state.SQLStore
	Renderer *Renderer
}

// NewCommandContext opens and migrates the pin store.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutStore(cmd)

	store, err := state.OpenStore(cmd.Context(), cmdCtx.Cfg.StateConfig(), cmdCtx.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open pin store: %w", err)
	}
	cmdCtx.Store = store

	cleanup := func() {
		if err := store.Close(); err != nil {
			cmdCtx.Logger.Warn("failed to close pin store", "error", err)
		}
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a store.
// Useful for commands that don't need database access.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: NewRenderer(cmd.OutOrStdout(), Mode(cfg.OutputFormat)),
	}
}
