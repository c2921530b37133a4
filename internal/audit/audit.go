package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cargotrack-platform/api/internal/store"
	"github.com/google/uuid"
)

type Recorder interface {
	InsertAuditLog(ctx context.Context, p store.InsertAuditLogParams) error
}

type Logger struct {
	rec Recorder
}

func NewLogger(rec Recorder) *Logger {
	return &Logger{rec: rec}
}

type Entry struct {
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	RequestID  string
	Metadata   map[string]any
}

func (l *Logger) Log(ctx context.Context, entry Entry) error {
	metadata := []byte("{}")
	if len(entry.Metadata) > 0 {
		encoded, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		metadata = encoded
	}

	params := store.InsertAuditLogParams{
		Action:     entry.Action,
		EntityType: entry.EntityType,
		Metadata:   metadata,
	}
	if entry.EntityID != nil {
		params.EntityID = entry.EntityID
	}
	if entry.RequestID != "" {
		params.RequestID = &entry.RequestID
	}

	if err := l.rec.InsertAuditLog(ctx, params); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
