package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pins/internal/actor"
)

// NewTokenCommand creates the token command.
func NewTokenCommand() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <actor-id>",
		Short: "Issue a signed actor token",
		Long: `Issue an HS256 token naming an actor, signed with server.jwt_secret.

Send it as "Authorization: Bearer <token>", or open <base_path>/login
in a browser and paste it into the form to start a session.`,
		Example: `  pins token root
  pins token alex --ttl 1h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, args[0], ttl)
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime (0 for no expiry)")

	return cmd
}

func runToken(cmd *cobra.Command, actorID string, ttl time.Duration) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)

	secret := cmdCtx.Cfg.Server.JWTSecret
	if secret == "" {
		return errors.New("server.jwt_secret is not set (hint: export PINS_SERVER__JWT_SECRET)")
	}
	verifier, err := actor.NewVerifier([]byte(secret))
	if err != nil {
		return err
	}
	token, err := verifier.Generate(actorID, ttl)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() != ModeText {
		return r.Data(map[string]any{"actor": actorID, "token": token})
	}
	r.Println(token)
	return nil
}
