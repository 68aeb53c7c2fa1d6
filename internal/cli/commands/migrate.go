package commands

import (
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long: `Create or upgrade the pin store schema. Other commands migrate on
start as well; this one only migrates and reports the schema version.`,
		Example: `  pins migrate
  pins migrate --driver postgres --dsn postgres://localhost/pins`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	version, err := cmdCtx.Store.MigrationVersion(cmd.Context())
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() != ModeText {
		return r.Data(map[string]any{"ok": true, "version": version})
	}
	r.Printf("Schema is at version %d\n", version)
	return nil
}
