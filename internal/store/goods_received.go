package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UpsertGoodsReceivedParams struct {
	CustomerID        uuid.UUID
	WarehouseLocation string
	IdempotencyKey    string
	Description       string
	Quantity          int32
	Volume            float64
	TrackingRef       string
	ReceivedDate      time.Time
	SupplierDate      *time.Time
	SourceFile        string
	RowNumber         int32
}

func (s *Store) UpsertGoodsReceived(ctx context.Context, p UpsertGoodsReceivedParams) (UpsertResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing GoodsReceived
	err = tx.QueryRow(ctx, `
		SELECT id, customer_id, quantity, volume, tracking_ref, received_date, supplier_date
		FROM goods_received
		WHERE idempotency_key = $1
		FOR UPDATE
	`, p.IdempotencyKey).Scan(
		&existing.ID, &existing.CustomerID, &existing.Quantity, &existing.Volume,
		&existing.TrackingRef, &existing.ReceivedDate, &existing.SupplierDate,
	)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx, `
			INSERT INTO goods_received (
				customer_id, warehouse_location, idempotency_key, description,
				quantity, volume, tracking_ref, received_date, supplier_date,
				source_file, row_number
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, p.CustomerID, p.WarehouseLocation, p.IdempotencyKey, p.Description,
			p.Quantity, p.Volume, p.TrackingRef, p.ReceivedDate, p.SupplierDate,
			p.SourceFile, p.RowNumber)
		if err != nil {
			return "", fmt.Errorf("insert goods received: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return "", fmt.Errorf("commit: %w", err)
		}
		return UpsertCreated, nil

	case err != nil:
		return "", fmt.Errorf("lookup goods received: %w", err)
	}

	unchanged := existing.CustomerID == p.CustomerID &&
		existing.Quantity == p.Quantity &&
		existing.Volume == p.Volume &&
		existing.TrackingRef == p.TrackingRef &&
		existing.ReceivedDate.Equal(p.ReceivedDate) &&
		equalDatePtr(existing.SupplierDate, p.SupplierDate)
	if unchanged {
		if err := tx.Commit(ctx); err != nil {
			return "", fmt.Errorf("commit: %w", err)
		}
		return UpsertSkipped, nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE goods_received SET
			customer_id = $2, quantity = $3, volume = $4, tracking_ref = $5,
			received_date = $6, supplier_date = $7, updated_at = now()
		WHERE id = $1
	`, existing.ID, p.CustomerID, p.Quantity, p.Volume, p.TrackingRef,
		p.ReceivedDate, p.SupplierDate)
	if err != nil {
		return "", fmt.Errorf("update goods received: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return UpsertUpdated, nil
}
