package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/cli/config"
	"github.com/leapstack-labs/pins/pkg/core"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "pins.db")
	cfg.OutputFormat = string(ModeJSON)
	return cfg
}

func execute(t *testing.T, cfg *config.Config, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(WithConfig(context.Background(), cfg))
	return buf.String(), err
}

func listPins(t *testing.T, cfg *config.Config) []core.PinnedItem {
	t.Helper()
	out, err := execute(t, cfg, NewListCommand())
	require.NoError(t, err)
	var pins []core.PinnedItem
	require.NoError(t, json.Unmarshal([]byte(out), &pins), out)
	return pins
}

func pinID(t *testing.T, out string) int64 {
	t.Helper()
	var resp struct {
		OK bool  `json:"ok"`
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.True(t, resp.OK)
	return resp.ID
}

// =============================================================================
// Command metadata
// =============================================================================

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewServeCommand(), "serve", []string{"open"}},
		{NewMigrateCommand(), "migrate", nil},
		{NewListCommand(), "list", nil},
		{NewPinCommand(), "pin <item_type> <database> [table]", []string{"actor"}},
		{NewUnpinCommand(), "unpin <id>...", nil},
		{NewReorderCommand(), "reorder <id>...", nil},
		{NewTokenCommand(), "token <actor-id>", []string{"ttl"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Example, "Example should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

// =============================================================================
// Pin lifecycle through the CLI
// =============================================================================

func TestPinLifecycle(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(t, cfg, NewPinCommand(), "table", "fixtures", "dogs", "--actor", "root")
	require.NoError(t, err)
	dogs := pinID(t, out)

	out, err = execute(t, cfg, NewPinCommand(), "database", "content")
	require.NoError(t, err)
	content := pinID(t, out)

	out, err = execute(t, cfg, NewPinCommand(), "table", "fixtures", "dogs")
	require.NoError(t, err)
	assert.Equal(t, dogs, pinID(t, out), "pinning twice returns the existing id")

	pins := listPins(t, cfg)
	require.Len(t, pins, 2)
	assert.Equal(t, []int64{dogs, content}, []int64{pins[0].ID, pins[1].ID})
	require.NotNil(t, pins[0].PinnerActorID)
	assert.Equal(t, "root", *pins[0].PinnerActorID)
	assert.Nil(t, pins[1].PinnerActorID)

	_, err = execute(t, cfg, NewReorderCommand(), fmt.Sprint(content), fmt.Sprint(dogs))
	require.NoError(t, err)
	pins = listPins(t, cfg)
	assert.Equal(t, []int64{content, dogs}, []int64{pins[0].ID, pins[1].ID})

	_, err = execute(t, cfg, NewUnpinCommand(), fmt.Sprint(dogs), "99999")
	require.NoError(t, err)
	pins = listPins(t, cfg)
	require.Len(t, pins, 1)
	assert.Equal(t, content, pins[0].ID)
}

func TestPin_InvalidArguments(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name string
		cmd  *cobra.Command
		args []string
	}{
		{"database with table", NewPinCommand(), []string{"database", "content", "extra"}},
		{"table without table", NewPinCommand(), []string{"table", "fixtures"}},
		{"unpin non-integer", NewUnpinCommand(), []string{"abc"}},
		{"reorder float", NewReorderCommand(), []string{"1", "2.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, cfg, tt.cmd, tt.args...)
			assert.ErrorIs(t, err, core.ErrMalformedInput)
		})
	}

	assert.Empty(t, listPins(t, cfg))
}

// =============================================================================
// Output modes
// =============================================================================

func TestList_OutputModes(t *testing.T) {
	cfg := testConfig(t)

	cfg.OutputFormat = string(ModeText)
	out, err := execute(t, cfg, NewListCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing is pinned yet.")

	_, err = execute(t, cfg, NewPinCommand(), "view", "fixtures", "recent")
	require.NoError(t, err)

	out, err = execute(t, cfg, NewListCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "fixtures / recent")
	assert.Contains(t, strings.ToUpper(out), "PINNED BY")

	cfg.OutputFormat = string(ModeYAML)
	out, err = execute(t, cfg, NewListCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "origin_database: fixtures")
	assert.Contains(t, out, "item_type: view")
}

func TestRenderer_EffectiveMode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ModeJSON, NewRenderer(&buf, ModeAuto).EffectiveMode(), "non-terminal writers get JSON")
	assert.Equal(t, ModeJSON, NewRenderer(&buf, "").EffectiveMode())
	assert.Equal(t, ModeText, NewRenderer(&buf, ModeText).EffectiveMode())
	assert.Equal(t, ModeYAML, NewRenderer(&buf, ModeYAML).EffectiveMode())
}

// =============================================================================
// migrate, token, serve helpers
// =============================================================================

func TestMigrate(t *testing.T) {
	out, err := execute(t, testConfig(t), NewMigrateCommand())
	require.NoError(t, err)

	var resp struct {
		Version int64 `json:"version"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.EqualValues(t, 1, resp.Version)
}

func TestToken(t *testing.T) {
	cfg := testConfig(t)

	_, err := execute(t, cfg, NewTokenCommand(), "root")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret is not set")

	cfg.Server.JWTSecret = "commands-test-jwt-secret-32-bytes!"
	out, err := execute(t, cfg, NewTokenCommand(), "root", "--ttl", "1h")
	require.NoError(t, err)

	var resp struct {
		Actor string `json:"actor"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "root", resp.Actor)

	verifier, err := actor.NewVerifier([]byte(cfg.Server.JWTSecret))
	require.NoError(t, err)
	a, err := verifier.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "root", a.ID)

	cfg.Server.JWTSecret = "short"
	_, err = execute(t, cfg, NewTokenCommand(), "root", "--ttl", time.Hour.String())
	assert.ErrorIs(t, err, actor.ErrShortSecret)
}

func TestSessionSecret(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	got, err := sessionSecret("configured", logger)
	require.NoError(t, err)
	assert.Equal(t, "configured", got)

	a, err := sessionSecret("", logger)
	require.NoError(t, err)
	b, err := sessionSecret("", logger)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestGetConfig_FallsBackToDefaults(t *testing.T) {
	cfg := getConfig(context.Background())
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultBasePath, cfg.Server.BasePath)
}
