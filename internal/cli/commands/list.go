package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pins/pkg/core"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pinned items in homepage order",
		Long: `List every pinned item, sorted the way the homepage shows them.

Output adapts to environment:
  - Terminal: table
  - Piped/Scripted: JSON

Use --output to override: auto, text, json, yaml`,
		Example: `  # List pins (auto-detect output format)
  pins list

  # List pins as YAML
  pins list --output yaml`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	pins, err := cmdCtx.Store.ListPins(cmd.Context())
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() != ModeText {
		return r.Data(pins)
	}

	if len(pins) == 0 {
		r.Println("Nothing is pinned yet.")
		return nil
	}
	rows := make([]table.Row, 0, len(pins))
	for _, p := range pins {
		rows = append(rows, table.Row{p.ID, p.OrderIdx, p.ItemType, p.Label(), pinnedBy(p)})
	}
	r.Table(table.Row{"ID", "Order", "Type", "Resource", "Pinned by"}, rows)
	return nil
}

func pinnedBy(p core.PinnedItem) string {
	if p.PinnerActorID == nil {
		return "-"
	}
	return *p.PinnerActorID
}
