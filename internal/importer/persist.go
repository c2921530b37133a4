package importer

import (
	"context"
	"fmt"

	"github.com/cargotrack-platform/api/internal/store"
	"github.com/google/uuid"
)

// Store is the persistence surface the engine consumes.
type Store interface {
	GetOrCreateCustomerByMark(ctx context.Context, shippingMark, name, origin string) (store.Customer, error)
	GetOrCreateContainerByRef(ctx context.Context, containerRef string) (store.Container, error)
	UpsertCargoItem(ctx context.Context, p store.UpsertCargoItemParams) (store.UpsertResult, error)
	UpsertGoodsReceived(ctx context.Context, p store.UpsertGoodsReceivedParams) (store.UpsertResult, error)
	RecomputeContainerTotals(ctx context.Context, containerID uuid.UUID) error
}

// persister writes one normalized row to its target entity. One persister
// is selected per batch together with the column schema, so the row loop
// carries no per-type branching. touched is the container whose aggregates
// the write affected, or uuid.Nil for warehouse receipts.
type persister interface {
	entity() string
	upsert(ctx context.Context, rec NormalizedRecord, customerID uuid.UUID, key string, source fileContext) (store.UpsertResult, uuid.UUID, error)
}

type fileContext struct {
	Name      string
	RowNumber int
}

func persisterFor(uploadType UploadType, st Store) persister {
	if uploadType == UploadSeaCargo {
		return &seaCargoPersister{store: st}
	}
	return &goodsReceivedPersister{store: st}
}

type goodsReceivedPersister struct {
	store Store
}

func (p *goodsReceivedPersister) entity() string {
	return "warehouse receipt"
}

func (p *goodsReceivedPersister) upsert(ctx context.Context, rec NormalizedRecord, customerID uuid.UUID, key string, source fileContext) (store.UpsertResult, uuid.UUID, error) {
	if rec.PrimaryDate == nil {
		return "", uuid.Nil, fmt.Errorf("warehouse receipt without received date")
	}
	result, err := p.store.UpsertGoodsReceived(ctx, store.UpsertGoodsReceivedParams{
		CustomerID:        customerID,
		WarehouseLocation: rec.WarehouseLocation,
		IdempotencyKey:    key,
		Description:       rec.Description,
		Quantity:          rec.Quantity,
		Volume:            rec.Volume,
		TrackingRef:       rec.TrackingRef,
		ReceivedDate:      *rec.PrimaryDate,
		SupplierDate:      rec.SecondaryDate,
		SourceFile:        source.Name,
		RowNumber:         int32(source.RowNumber),
	})
	return result, uuid.Nil, err
}

type seaCargoPersister struct {
	store Store
}

func (p *seaCargoPersister) entity() string {
	return "cargo item"
}

func (p *seaCargoPersister) upsert(ctx context.Context, rec NormalizedRecord, customerID uuid.UUID, key string, source fileContext) (store.UpsertResult, uuid.UUID, error) {
	container, err := p.store.GetOrCreateContainerByRef(ctx, rec.ContainerRef)
	if err != nil {
		return "", uuid.Nil, err
	}
	result, err := p.store.UpsertCargoItem(ctx, store.UpsertCargoItemParams{
		ContainerID:    container.ID,
		CustomerID:     customerID,
		IdempotencyKey: key,
		Description:    rec.Description,
		Quantity:       rec.Quantity,
		Volume:         rec.Volume,
		Weight:         0,
		TrackingRef:    rec.TrackingRef,
		CargoDate:      rec.SecondaryDate,
		SourceFile:     source.Name,
		RowNumber:      int32(source.RowNumber),
	})
	if err != nil {
		return "", uuid.Nil, err
	}
	return result, container.ID, nil
}
