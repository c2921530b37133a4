package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertResult reports what a row-scoped upsert actually did.
type UpsertResult string

const (
	UpsertCreated UpsertResult = "created"
	UpsertUpdated UpsertResult = "updated"
	UpsertSkipped UpsertResult = "skipped"
)

type UpsertCargoItemParams struct {
	ContainerID    uuid.UUID
	CustomerID     uuid.UUID
	IdempotencyKey string
	Description    string
	Quantity       int32
	Volume         float64
	Weight         float64
	TrackingRef    string
	CargoDate      *time.Time
	SourceFile     string
	RowNumber      int32
}

// UpsertCargoItem creates, updates, or no-ops the cargo item identified by
// the idempotency key. It runs in its own transaction: the existing row is
// locked FOR UPDATE, compared field by field, and only rewritten when the
// incoming values differ. A failure rolls back this row alone.
func (s *Store) UpsertCargoItem(ctx context.Context, p UpsertCargoItemParams) (UpsertResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing CargoItem
	err = tx.QueryRow(ctx, `
		SELECT id, container_id, customer_id, quantity, volume, weight, tracking_ref, cargo_date
		FROM cargo_items
		WHERE idempotency_key = $1
		FOR UPDATE
	`, p.IdempotencyKey).Scan(
		&existing.ID, &existing.ContainerID, &existing.CustomerID,
		&existing.Quantity, &existing.Volume, &existing.Weight,
		&existing.TrackingRef, &existing.CargoDate,
	)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx, `
			INSERT INTO cargo_items (
				container_id, customer_id, idempotency_key, description,
				quantity, volume, weight, tracking_ref, cargo_date,
				source_file, row_number
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, p.ContainerID, p.CustomerID, p.IdempotencyKey, p.Description,
			p.Quantity, p.Volume, p.Weight, p.TrackingRef, p.CargoDate,
			p.SourceFile, p.RowNumber)
		if err != nil {
			return "", fmt.Errorf("insert cargo item: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return "", fmt.Errorf("commit: %w", err)
		}
		return UpsertCreated, nil

	case err != nil:
		return "", fmt.Errorf("lookup cargo item: %w", err)
	}

	unchanged := existing.ContainerID == p.ContainerID &&
		existing.CustomerID == p.CustomerID &&
		existing.Quantity == p.Quantity &&
		existing.Volume == p.Volume &&
		existing.Weight == p.Weight &&
		existing.TrackingRef == p.TrackingRef &&
		equalDatePtr(existing.CargoDate, p.CargoDate)
	if unchanged {
		if err := tx.Commit(ctx); err != nil {
			return "", fmt.Errorf("commit: %w", err)
		}
		return UpsertSkipped, nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE cargo_items SET
			container_id = $2, customer_id = $3, quantity = $4, volume = $5,
			weight = $6, tracking_ref = $7, cargo_date = $8, updated_at = now()
		WHERE id = $1
	`, existing.ID, p.ContainerID, p.CustomerID, p.Quantity, p.Volume,
		p.Weight, p.TrackingRef, p.CargoDate)
	if err != nil {
		return "", fmt.Errorf("update cargo item: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return UpsertUpdated, nil
}

func (s *Store) CountCargoItemsByContainer(ctx context.Context, containerID uuid.UUID) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM cargo_items WHERE container_id = $1`, containerID,
	).Scan(&count)
	return count, err
}
