package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cargotrack-platform/api/internal/store"
	"github.com/google/uuid"
)

// Batch describes one file-processing run. It lives for the duration of
// the request and is never persisted.
type Batch struct {
	Type              UploadType
	WarehouseLocation string
	FileName          string
}

// Report is the batch outcome handed back to the caller: one RowResult
// per raw row in file order, aggregate counts, and any batch-level
// warnings (aggregate recompute failures).
type Report struct {
	Summary  Summary     `json:"summary"`
	Results  []RowResult `json:"results"`
	Warnings []string    `json:"warnings,omitempty"`
}

type Engine struct {
	store  Store
	logger *slog.Logger
}

func NewEngine(st Store, logger *slog.Logger) *Engine {
	return &Engine{store: st, logger: logger}
}

// Run processes rows sequentially in file order. Row-level failures are
// recorded and processing continues; nothing short of the caller's context
// stops the loop. After the last row the touched containers' totals are
// recomputed, once per batch, because the bulk row path does not run
// single-record update hooks.
func (e *Engine) Run(ctx context.Context, batch Batch, rows []RawRow) Report {
	schemaPersister := persisterFor(batch.Type, e.store)
	reporter := NewReporter(len(rows))
	touched := make(map[uuid.UUID]struct{})

	for _, row := range rows {
		status, message := e.processRow(ctx, batch, schemaPersister, row, touched)
		reporter.Record(row.Number, status, message)
		if status == RowError {
			e.logger.Warn("import_row_error",
				"file", batch.FileName,
				"row", row.Number,
				"reason", message,
			)
		}
	}

	warnings := e.recomputeTouched(ctx, touched)

	return Report{
		Summary:  reporter.Summary(),
		Results:  reporter.Results(),
		Warnings: warnings,
	}
}

func (e *Engine) processRow(ctx context.Context, batch Batch, p persister, row RawRow, touched map[uuid.UUID]struct{}) (RowStatus, string) {
	mapped := mapColumns(row.Cells, batch.Type)

	rec, err := validateRow(mapped, batch.Type)
	if err != nil {
		return RowError, err.Error()
	}
	rec.WarehouseLocation = batch.WarehouseLocation

	customer, err := e.store.GetOrCreateCustomerByMark(ctx, rec.ShippingMark, stubCustomerName(rec.ShippingMark), store.OriginImport)
	if err != nil {
		return RowError, fmt.Sprintf("resolve customer %q: %v", rec.ShippingMark, err)
	}

	key := Fingerprint(rec, batch.FileName, row.Number)

	result, containerID, err := p.upsert(ctx, rec, customer.ID, key, fileContext{Name: batch.FileName, RowNumber: row.Number})
	if err != nil {
		return RowError, fmt.Sprintf("persist %s: %v", p.entity(), err)
	}
	if containerID != uuid.Nil {
		touched[containerID] = struct{}{}
	}

	switch result {
	case store.UpsertCreated:
		return RowCreated, fmt.Sprintf("%s created", p.entity())
	case store.UpsertUpdated:
		return RowUpdated, fmt.Sprintf("%s updated", p.entity())
	default:
		return RowSkipped, fmt.Sprintf("%s unchanged", p.entity())
	}
}

// recomputeTouched re-sums derived totals for every container this batch
// wrote into. Failures become batch warnings; already-reported RowResults
// are never rewritten.
func (e *Engine) recomputeTouched(ctx context.Context, touched map[uuid.UUID]struct{}) []string {
	var warnings []string
	for containerID := range touched {
		if err := e.store.RecomputeContainerTotals(ctx, containerID); err != nil {
			warning := fmt.Sprintf("container %s totals were not recomputed: %v", containerID, err)
			warnings = append(warnings, warning)
			e.logger.Warn("import_recompute_failed", "container_id", containerID, "error", err)
		}
	}
	return warnings
}

func stubCustomerName(shippingMark string) string {
	return "Customer " + shippingMark
}
