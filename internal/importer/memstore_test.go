package importer

import (
	"context"
	"sync"
	"time"

	"github.com/cargotrack-platform/api/internal/store"
	"github.com/google/uuid"
)

// memStore is an in-memory Store double with the same get-or-create and
// compare-then-write semantics as the pgx implementation. Failures are
// injected per shipping mark, per row number, or on recompute.
type memStore struct {
	mu sync.Mutex

	customers    map[string]store.Customer
	containers   map[string]store.Container
	containerIDs map[uuid.UUID]string
	cargoItems   map[string]store.CargoItem
	goods        map[string]store.GoodsReceived

	customerErr  map[string]error
	upsertRowErr map[int32]error
	recomputeErr error
}

func newMemStore() *memStore {
	return &memStore{
		customers:    map[string]store.Customer{},
		containers:   map[string]store.Container{},
		containerIDs: map[uuid.UUID]string{},
		cargoItems:   map[string]store.CargoItem{},
		goods:        map[string]store.GoodsReceived{},
		customerErr:  map[string]error{},
		upsertRowErr: map[int32]error{},
	}
}

func (m *memStore) GetOrCreateCustomerByMark(_ context.Context, shippingMark, name, origin string) (store.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.customerErr[shippingMark]; err != nil {
		return store.Customer{}, err
	}
	if c, ok := m.customers[shippingMark]; ok {
		return c, nil
	}
	c := store.Customer{
		ID:           uuid.New(),
		ShippingMark: shippingMark,
		Name:         name,
		Origin:       origin,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.customers[shippingMark] = c
	return c, nil
}

func (m *memStore) GetOrCreateContainerByRef(_ context.Context, containerRef string) (store.Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.containers[containerRef]; ok {
		return c, nil
	}
	c := store.Container{ID: uuid.New(), ContainerRef: containerRef}
	m.containers[containerRef] = c
	m.containerIDs[c.ID] = containerRef
	return c, nil
}

func (m *memStore) UpsertCargoItem(_ context.Context, p store.UpsertCargoItemParams) (store.UpsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.upsertRowErr[p.RowNumber]; err != nil {
		return "", err
	}

	existing, ok := m.cargoItems[p.IdempotencyKey]
	if !ok {
		m.cargoItems[p.IdempotencyKey] = store.CargoItem{
			ID:             uuid.New(),
			ContainerID:    p.ContainerID,
			CustomerID:     p.CustomerID,
			IdempotencyKey: p.IdempotencyKey,
			Description:    p.Description,
			Quantity:       p.Quantity,
			Volume:         p.Volume,
			Weight:         p.Weight,
			TrackingRef:    p.TrackingRef,
			CargoDate:      p.CargoDate,
			SourceFile:     p.SourceFile,
			RowNumber:      p.RowNumber,
		}
		return store.UpsertCreated, nil
	}

	unchanged := existing.ContainerID == p.ContainerID &&
		existing.CustomerID == p.CustomerID &&
		existing.Quantity == p.Quantity &&
		existing.Volume == p.Volume &&
		existing.Weight == p.Weight &&
		existing.TrackingRef == p.TrackingRef &&
		equalDates(existing.CargoDate, p.CargoDate)
	if unchanged {
		return store.UpsertSkipped, nil
	}

	existing.ContainerID = p.ContainerID
	existing.CustomerID = p.CustomerID
	existing.Quantity = p.Quantity
	existing.Volume = p.Volume
	existing.Weight = p.Weight
	existing.TrackingRef = p.TrackingRef
	existing.CargoDate = p.CargoDate
	m.cargoItems[p.IdempotencyKey] = existing
	return store.UpsertUpdated, nil
}

func (m *memStore) UpsertGoodsReceived(_ context.Context, p store.UpsertGoodsReceivedParams) (store.UpsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.upsertRowErr[p.RowNumber]; err != nil {
		return "", err
	}

	existing, ok := m.goods[p.IdempotencyKey]
	if !ok {
		m.goods[p.IdempotencyKey] = store.GoodsReceived{
			ID:                uuid.New(),
			CustomerID:        p.CustomerID,
			WarehouseLocation: p.WarehouseLocation,
			IdempotencyKey:    p.IdempotencyKey,
			Description:       p.Description,
			Quantity:          p.Quantity,
			Volume:            p.Volume,
			TrackingRef:       p.TrackingRef,
			ReceivedDate:      p.ReceivedDate,
			SupplierDate:      p.SupplierDate,
			SourceFile:        p.SourceFile,
			RowNumber:         p.RowNumber,
		}
		return store.UpsertCreated, nil
	}

	unchanged := existing.CustomerID == p.CustomerID &&
		existing.Quantity == p.Quantity &&
		existing.Volume == p.Volume &&
		existing.TrackingRef == p.TrackingRef &&
		existing.ReceivedDate.Equal(p.ReceivedDate) &&
		equalDates(existing.SupplierDate, p.SupplierDate)
	if unchanged {
		return store.UpsertSkipped, nil
	}

	existing.CustomerID = p.CustomerID
	existing.Quantity = p.Quantity
	existing.Volume = p.Volume
	existing.TrackingRef = p.TrackingRef
	existing.ReceivedDate = p.ReceivedDate
	existing.SupplierDate = p.SupplierDate
	m.goods[p.IdempotencyKey] = existing
	return store.UpsertUpdated, nil
}

func (m *memStore) RecomputeContainerTotals(_ context.Context, containerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recomputeErr != nil {
		return m.recomputeErr
	}
	ref, ok := m.containerIDs[containerID]
	if !ok {
		return nil
	}
	container := m.containers[ref]
	container.TotalVolume = 0
	container.TotalWeight = 0
	for _, item := range m.cargoItems {
		if item.ContainerID == containerID {
			container.TotalVolume += item.Volume
			container.TotalWeight += item.Weight
		}
	}
	m.containers[ref] = container
	return nil
}

func (m *memStore) customerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.customers)
}

func (m *memStore) container(ref string) store.Container {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.containers[ref]
}

func (m *memStore) cargoItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cargoItems)
}

func (m *memStore) goodsCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.goods)
}

func equalDates(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
