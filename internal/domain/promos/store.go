package promos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) GetByCode(ctx context.Context, code string) (*PromoCode, error) {
	const query = `
		SELECT code, discount_type, value, min_subtotal, active, expires_at
		FROM promo_codes
		WHERE code = $1`

	var p PromoCode
	err := r.db.QueryRow(ctx, query, Normalize(code)).
		Scan(&p.Code, &p.DiscountType, &p.Value, &p.MinSubtotal, &p.Active, &p.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidPromo
		}
		return nil, fmt.Errorf("get promo code: %w", err)
	}
	return &p, nil
}

// Upsert inserts the code or replaces its terms.
func (r *Repository) Upsert(ctx context.Context, p *PromoCode) error {
	const query = `
		INSERT INTO promo_codes (code, discount_type, value, min_subtotal, active, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (code) DO UPDATE
		SET discount_type = EXCLUDED.discount_type,
		    value = EXCLUDED.value,
		    min_subtotal = EXCLUDED.min_subtotal,
		    active = EXCLUDED.active,
		    expires_at = EXCLUDED.expires_at`

	_, err := r.db.Exec(ctx, query, Normalize(p.Code), p.DiscountType, p.Value, p.MinSubtotal, p.Active, p.ExpiresAt)
	if err != nil {
		return fmt.Errorf("upsert promo code %s: %w", p.Code, err)
	}
	return nil
}
