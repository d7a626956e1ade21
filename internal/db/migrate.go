package db

import (
	"context"
	_ "embed"
	"fmt"

	"bookit/internal/domain/promos"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	//go:embed schema.sql
	schemaSQL string

	//go:embed seed.sql
	seedSQL string
)

// Migrate creates the tables if they do not exist. It is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Seed loads the sample catalog and the default promo codes. Existing rows are
// left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool, store promos.Store) error {
	if _, err := pool.Exec(ctx, seedSQL); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	for _, p := range promos.Defaults() {
		if err := store.Upsert(ctx, &p); err != nil {
			return fmt.Errorf("seed promo %s: %w", p.Code, err)
		}
	}
	return nil
}
