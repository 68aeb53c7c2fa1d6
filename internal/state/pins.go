package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/pins/pkg/core"
)

// ListPins returns every pinned item in display order.
func (s *SQLStore) ListPins(ctx context.Context) ([]core.PinnedItem, error) {
	if s.db == nil {
		return nil, core.ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.listPins)
	if err != nil {
		return nil, fmt.Errorf("failed to list pins: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []core.PinnedItem{}
	for rows.Next() {
		var (
			item                                  core.PinnedItem
			itemType                              string
			pinner, originTable, identifierColumn sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &pinner, &item.PinLocation, &itemType, &item.OriginDatabase,
			&originTable, &identifierColumn, &item.OrderIdx,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pin: %w", err)
		}
		item.ItemType = core.ItemType(itemType)
		item.PinnerActorID = fromNull(pinner)
		item.OriginTable = fromNull(originTable)
		item.Identifier = fromNull(identifierColumn)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pins: %w", err)
	}
	return items, nil
}

// CreatePin pins a resource to the homepage and returns its id.
// Pinning a resource that is already pinned returns the existing id.
func (s *SQLStore) CreatePin(ctx context.Context, actorID *string, itemType core.ItemType, originDatabase string, originTable *string) (int64, error) {
	if s.db == nil {
		return 0, core.ErrStoreClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, s.dialect.insertPin,
		toNull(actorID), core.PinLocationHome, string(itemType), originDatabase, toNull(originTable), core.InitialOrderIdx,
	).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Conflict on the resource index: hand back the row that won.
		if err := tx.QueryRowContext(ctx, s.dialect.findPin, string(itemType), originDatabase, toNull(originTable)).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to find existing pin: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("failed to insert pin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit pin: %w", err)
	}

	s.logger.Debug("pin created",
		slog.Int64("id", id),
		slog.String("item_type", string(itemType)),
		slog.String("origin_database", originDatabase))
	return id, nil
}

// DeletePin removes a pinned item. Deleting an unknown id is a no-op.
func (s *SQLStore) DeletePin(ctx context.Context, id int64) error {
	if s.db == nil {
		return core.ErrStoreClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.dialect.deletePin, id); err != nil {
		return fmt.Errorf("failed to delete pin: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit unpin: %w", err)
	}

	s.logger.Debug("pin deleted", slog.Int64("id", id))
	return nil
}

// ReorderPins applies all assignments in a single statement inside one
// transaction. Ids that do not exist are ignored.
func (s *SQLStore) ReorderPins(ctx context.Context, assignments []core.OrderAssignment) error {
	if s.db == nil {
		return core.ErrStoreClosed
	}
	if len(assignments) == 0 {
		return nil
	}

	payload, err := json.Marshal(core.NormalizeAssignments(assignments))
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, s.dialect.reorderPins, string(payload))
	if err != nil {
		return fmt.Errorf("failed to reorder pins: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil {
		s.logger.Debug("pins reordered", slog.Int("requested", len(assignments)), slog.Int64("updated", n))
	}
	return nil
}

// FindPin looks up the pin for a resource.
func (s *SQLStore) FindPin(ctx context.Context, itemType core.ItemType, originDatabase string, originTable *string) (int64, bool, error) {
	if s.db == nil {
		return 0, false, core.ErrStoreClosed
	}

	var id int64
	err := s.db.QueryRowContext(ctx, s.dialect.findPin, string(itemType), originDatabase, toNull(originTable)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find pin: %w", err)
	}
	return id, true, nil
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
