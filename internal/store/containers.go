package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

func (s *Store) GetOrCreateContainerByRef(ctx context.Context, containerRef string) (Container, error) {
	var c Container
	err := s.pool.QueryRow(ctx, `
		INSERT INTO containers (container_ref, total_volume, total_weight)
		VALUES ($1, 0, 0)
		ON CONFLICT (container_ref) DO UPDATE SET container_ref = EXCLUDED.container_ref
		RETURNING id, container_ref, total_volume, total_weight, created_at, updated_at
	`, containerRef).Scan(
		&c.ID, &c.ContainerRef, &c.TotalVolume, &c.TotalWeight, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return Container{}, fmt.Errorf("get or create container %q: %w", containerRef, err)
	}
	return c, nil
}

func (s *Store) GetContainerByID(ctx context.Context, id uuid.UUID) (Container, error) {
	var c Container
	err := s.pool.QueryRow(ctx, `
		SELECT id, container_ref, total_volume, total_weight, created_at, updated_at
		FROM containers
		WHERE id = $1
	`, id).Scan(
		&c.ID, &c.ContainerRef, &c.TotalVolume, &c.TotalWeight, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return Container{}, err
	}
	return c, nil
}

// RecomputeContainerTotals re-sums the container's current children into
// its derived totals. A full re-sum, not an incremental add, so it stays
// correct no matter which code path wrote the children. Single statement,
// so it needs no explicit transaction and is idempotent under concurrency.
func (s *Store) RecomputeContainerTotals(ctx context.Context, containerID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE containers SET
			total_volume = COALESCE((SELECT SUM(volume) FROM cargo_items WHERE container_id = $1), 0),
			total_weight = COALESCE((SELECT SUM(weight) FROM cargo_items WHERE container_id = $1), 0),
			updated_at = now()
		WHERE id = $1
	`, containerID)
	if err != nil {
		return fmt.Errorf("recompute container totals: %w", err)
	}
	return nil
}
