package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type InsertAuditLogParams struct {
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	RequestID  *string
	Metadata   []byte
}

func (s *Store) InsertAuditLog(ctx context.Context, p InsertAuditLogParams) error {
	metadata := p.Metadata
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_log (action, entity_type, entity_id, request_id, metadata)
		VALUES ($1, $2, $3, $4, $5)
	`, p.Action, p.EntityType, p.EntityID, p.RequestID, metadata)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
