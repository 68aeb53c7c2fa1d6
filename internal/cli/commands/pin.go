package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pins/pkg/core"
)

// NewPinCommand creates the pin command.
func NewPinCommand() *cobra.Command {
	var actorID string

	cmd := &cobra.Command{
		Use:   "pin <item_type> <database> [table]",
		Short: "Pin a database, table, view or query to the homepage",
		Long: `Pin a resource to the shared homepage list. Pinning a resource that is
already pinned prints the existing id.

This talks to the store directly and does not check permissions.`,
		Example: `  # Pin a table
  pins pin table fixtures dogs

  # Pin a whole database, recording who pinned it
  pins pin database content --actor root`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPin(cmd, args, actorID)
		},
	}

	cmd.Flags().StringVar(&actorID, "actor", "", "Actor id recorded as the pinner")

	return cmd
}

func runPin(cmd *cobra.Command, args []string, actorID string) error {
	kind := core.ItemType(args[0])
	database := args[1]
	var table *string
	if len(args) == 3 && args[2] != "" {
		table = &args[2]
	}
	if err := core.CheckTable(kind, table); err != nil {
		return err
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var pinner *string
	if actorID != "" {
		pinner = &actorID
	}
	id, err := cmdCtx.Store.CreatePin(cmd.Context(), pinner, kind, database, table)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() != ModeText {
		return r.Data(map[string]any{"ok": true, "id": id})
	}
	label := core.PinnedItem{OriginDatabase: database, OriginTable: table}.Label()
	r.Printf("Pinned %s %s (id %d)\n", kind, label, id)
	return nil
}

// NewUnpinCommand creates the unpin command.
func NewUnpinCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpin <id>...",
		Short: "Remove pins by id",
		Long:  `Remove pins by id. Unknown ids are ignored.`,
		Example: `  pins unpin 3
  pins unpin 3 7`,
		Args: cobra.MinimumNArgs(1),
		RunE: runUnpin,
	}
}

func runUnpin(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, id := range ids {
		if err := cmdCtx.Store.DeletePin(cmd.Context(), id); err != nil {
			return err
		}
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() != ModeText {
		return r.Data(map[string]any{"ok": true})
	}
	r.Printf("Unpinned %d item(s)\n", len(ids))
	return nil
}

// NewReorderCommand creates the reorder command.
func NewReorderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Put pins in the given order",
		Long: `Assign order_idx 1, 2, 3... to the given pin ids in argument order.
Pins not named keep their current order_idx. Unknown ids are ignored.`,
		Example: `  pins reorder 3 1 2`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runReorder,
	}
}

func runReorder(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	assignments := make([]core.OrderAssignment, len(ids))
	for i, id := range ids {
		assignments[i] = core.OrderAssignment{ID: id, OrderIdx: int64(i + 1)}
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cmdCtx.Store.ReorderPins(cmd.Context(), assignments); err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() != ModeText {
		return r.Data(map[string]any{"ok": true})
	}
	r.Printf("Reordered %d item(s)\n", len(assignments))
	return nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid pin id %q", core.ErrMalformedInput, a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
