package store

import (
	"context"
	"fmt"
)

const (
	OriginRegistration = "registration"
	OriginImport       = "import"
)

// GetOrCreateCustomerByMark resolves a customer by shipping mark, creating
// a stub when none exists. The single INSERT ... ON CONFLICT statement is
// atomic, so two batches racing on the same unseen mark both observe one
// row. The DO UPDATE arm rewrites the conflict key to itself only so that
// RETURNING yields the existing row untouched.
func (s *Store) GetOrCreateCustomerByMark(ctx context.Context, shippingMark, name, origin string) (Customer, error) {
	var c Customer
	err := s.pool.QueryRow(ctx, `
		INSERT INTO customers (shipping_mark, name, phone, origin, is_active)
		VALUES ($1, $2, '', $3, TRUE)
		ON CONFLICT (shipping_mark) DO UPDATE SET shipping_mark = EXCLUDED.shipping_mark
		RETURNING id, shipping_mark, name, phone, origin, is_active, created_at, updated_at
	`, shippingMark, name, origin).Scan(
		&c.ID, &c.ShippingMark, &c.Name, &c.Phone, &c.Origin, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return Customer{}, fmt.Errorf("get or create customer %q: %w", shippingMark, err)
	}
	return c, nil
}

func (s *Store) GetCustomerByMark(ctx context.Context, shippingMark string) (Customer, error) {
	var c Customer
	err := s.pool.QueryRow(ctx, `
		SELECT id, shipping_mark, name, phone, origin, is_active, created_at, updated_at
		FROM customers
		WHERE shipping_mark = $1
	`, shippingMark).Scan(
		&c.ID, &c.ShippingMark, &c.Name, &c.Phone, &c.Origin, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return Customer{}, err
	}
	return c, nil
}
