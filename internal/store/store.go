package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the hand-written pgx persistence layer. Every write that spans
// more than one statement runs inside its own transaction; callers never
// hold a transaction across rows.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type Customer struct {
	ID           uuid.UUID
	ShippingMark string
	Name         string
	Phone        string
	Origin       string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Container struct {
	ID           uuid.UUID
	ContainerRef string
	TotalVolume  float64
	TotalWeight  float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CargoItem struct {
	ID             uuid.UUID
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
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type GoodsReceived struct {
	ID                uuid.UUID
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
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func equalDatePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
