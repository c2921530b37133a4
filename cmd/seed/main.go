package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	shippingMark := envOrDefault("SEED_SHIPPING_MARK", "DEMO01")
	customerName := envOrDefault("SEED_CUSTOMER_NAME", "Demo Customer")
	containerRef := envOrDefault("SEED_CONTAINER_REF", "MSKU0000001")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin tx: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO customers (shipping_mark, name, phone, origin, is_active)
		VALUES ($1, $2, '', 'registration', TRUE)
		ON CONFLICT (shipping_mark) DO UPDATE SET name = EXCLUDED.name
	`, shippingMark, customerName); err != nil {
		log.Fatalf("upsert customer: %v", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO containers (container_ref, total_volume, total_weight)
		VALUES ($1, 0, 0)
		ON CONFLICT (container_ref) DO NOTHING
	`, containerRef); err != nil {
		log.Fatalf("upsert container: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("commit: %v", err)
	}

	log.Printf("seeded customer %s and container %s", shippingMark, containerRef)
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
