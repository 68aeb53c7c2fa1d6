package core

import (
	"context"
	"fmt"
)

// PinLocationHome is the only pin surface today. The column is kept so other
// surfaces can be added without a migration.
const PinLocationHome = "home"

// InitialOrderIdx is the order_idx given to every new pin. Reorders may assign
// smaller values, so new pins land at or near the front of the list.
const InitialOrderIdx = 1

// ItemType identifies the kind of resource a pin refers to.
// Integrations may use any string; the four below are the built-in kinds.
type ItemType string

// Built-in item types.
const (
	ItemTypeTable       ItemType = "table"
	ItemTypeView        ItemType = "view"
	ItemTypeDatabase    ItemType = "database"
	ItemTypeCannedQuery ItemType = "canned_query"
)

// PinnedItem is a persisted reference from the shared homepage to a resource.
type PinnedItem struct {
	ID             int64    `json:"id" yaml:"id"`
	PinnerActorID  *string  `json:"pinner_actor_id" yaml:"pinner_actor_id"`
	PinLocation    string   `json:"pin_location" yaml:"pin_location"`
	ItemType       ItemType `json:"item_type" yaml:"item_type"`
	OriginDatabase string   `json:"origin_database" yaml:"origin_database"`
	OriginTable    *string  `json:"origin_table" yaml:"origin_table"`
	Identifier     *string  `json:"identifier" yaml:"identifier"`
	OrderIdx       int64    `json:"order_idx" yaml:"order_idx"`
}

// Resource describes the origin of a pin: a database, or a table, view or
// query inside one. Table is nil for database-level resources.
type Resource struct {
	Kind     ItemType
	Database string
	Table    *string
}

// CheckTable enforces the table rule of the built-in kinds: database pins
// carry no table, the other built-ins need one. Custom kinds are not checked.
func CheckTable(kind ItemType, table *string) error {
	switch kind {
	case ItemTypeDatabase:
		if table != nil {
			return fmt.Errorf("%w: origin_table must be null for database pins", ErrMalformedInput)
		}
	case ItemTypeTable, ItemTypeView, ItemTypeCannedQuery:
		if table == nil {
			return fmt.Errorf("%w: origin_table is required for %s pins", ErrMalformedInput, kind)
		}
	}
	return nil
}

// Resource returns the resource the pin points at.
func (p PinnedItem) Resource() Resource {
	return Resource{Kind: p.ItemType, Database: p.OriginDatabase, Table: p.OriginTable}
}

// Label is a short human-readable name for the pinned resource.
func (p PinnedItem) Label() string {
	if p.OriginTable == nil {
		return p.OriginDatabase
	}
	return p.OriginDatabase + " / " + *p.OriginTable
}

// OrderAssignment sets the order_idx of a single pin during a reorder.
type OrderAssignment struct {
	ID       int64 `json:"id"`
	OrderIdx int64 `json:"order_idx"`
}

// NormalizeAssignments drops repeated ids, keeping the last assignment for
// each one. Input order is otherwise preserved.
func NormalizeAssignments(in []OrderAssignment) []OrderAssignment {
	last := make(map[int64]int, len(in))
	for i, a := range in {
		last[a.ID] = i
	}
	out := make([]OrderAssignment, 0, len(last))
	for i, a := range in {
		if last[a.ID] == i {
			out = append(out, a)
		}
	}
	return out
}

// PinStore is the ordered collection of pinned items.
//
// Every mutating call runs as a single transaction. ListPins returns pins
// sorted by order_idx, then id.
type PinStore interface {
	ListPins(ctx context.Context) ([]PinnedItem, error)
	CreatePin(ctx context.Context, actorID *string, itemType ItemType, originDatabase string, originTable *string) (int64, error)
	DeletePin(ctx context.Context, id int64) error
	ReorderPins(ctx context.Context, assignments []OrderAssignment) error
	FindPin(ctx context.Context, itemType ItemType, originDatabase string, originTable *string) (int64, bool, error)
	Close() error
}
