package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pins/internal/metadata"
	"github.com/leapstack-labs/pins/internal/permission"
	"github.com/leapstack-labs/pins/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Open bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the pins HTTP server",
		Long: `Start the HTTP server for the shared homepage pin list.

The server provides:
- JSON API for listing, pinning, unpinning and reordering
- Homepage fragment with a JSON data island
- Pin/Unpin action descriptors for resource pages
- Reorder view for actors with write-pins`,
		Example: `  # Start on the configured port
  pins serve

  # Start on a custom port and open a browser
  pins serve --port 3000 --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Open, "open", false, "Open the reorder view in a browser")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	if len(cfg.Permissions) == 0 {
		logger.Warn("no permissions configured, every actor will be denied")
	}

	secret, err := sessionSecret(cfg.Server.SessionSecret, logger)
	if err != nil {
		return err
	}

	server, err := ui.NewServer(ui.Config{
		Store:         cmdCtx.Store,
		Evaluator:     permission.NewPolicy(cfg.Permissions),
		Lookup:        metadata.NewStatic(cfg.Metadata.Databases),
		Port:          cfg.Server.Port,
		BasePath:      cfg.Server.BasePath,
		SessionSecret: secret,
		JWTSecret:     cfg.Server.JWTSecret,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	if opts.Open {
		go openBrowser(fmt.Sprintf("http://localhost:%d%s/", cfg.Server.Port, cfg.Server.BasePath))
	}

	r := cmdCtx.Renderer
	r.Printf("Serving pins on http://localhost:%d%s/\n", cfg.Server.Port, cfg.Server.BasePath)
	r.Println("Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// sessionSecret returns the configured secret, or a random one when unset.
// Sessions signed with a random secret do not survive a restart.
func sessionSecret(configured string, logger *slog.Logger) (string, error) {
	if configured != "" {
		return configured, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	logger.Warn("server.session_secret not set, using a random secret for this process")
	return hex.EncodeToString(buf), nil
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
