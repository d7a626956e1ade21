package bookings

import (
	"context"
	"errors"
	"fmt"

	"bookit/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxRefAttempts   = 3
	bookingRefUnique = "bookings_booking_ref_key"
)

type Repository struct {
	db   *pgxpool.Pool
	refs *ReferenceGenerator
}

func NewRepository(db *pgxpool.Pool, refs *ReferenceGenerator) Store {
	if refs == nil {
		panic("bookings: ReferenceGenerator is nil")
	}
	return &Repository{db: db, refs: refs}
}

// Create decrements the slot's availability only if enough seats remain, so
// two concurrent bookings can never oversell the same slot.
func (r *Repository) Create(ctx context.Context, b *Booking) error {
	var err error
	for attempt := 0; attempt < maxRefAttempts; attempt++ {
		b.BookingRef, err = r.refs.Generate()
		if err != nil {
			return err
		}

		err = database.WithTx(r.db, ctx, func(tx pgx.Tx) error {
			return r.create(ctx, tx, b)
		})
		if database.IsUniqueViolation(err, bookingRefUnique) {
			continue
		}
		return err
	}
	return fmt.Errorf("create booking: could not allocate a unique reference: %w", err)
}

func (r *Repository) create(ctx context.Context, q database.Querier, b *Booking) error {
	tag, err := q.Exec(ctx, `
		UPDATE slots
		SET available_slots = available_slots - $4
		WHERE experience_id = $1 AND date = $2 AND time = $3 AND available_slots >= $4`,
		b.ExperienceID, b.Date, b.Time, b.Quantity)
	if err != nil {
		return fmt.Errorf("reserve slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}

	err = q.QueryRow(ctx, `
		INSERT INTO bookings (
			experience_id, experience_name, full_name, email, date, time, quantity,
			subtotal, taxes, discount, total, promo_code, booking_ref, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id::text, created_at`,
		b.ExperienceID, b.ExperienceName, b.FullName, b.Email, b.Date, b.Time, b.Quantity,
		b.Subtotal, b.Taxes, b.Discount, b.Total, b.PromoCode, b.BookingRef, b.Status,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	const query = `
		SELECT id::text, experience_id::text, experience_name, full_name, email, date, time, quantity,
		       subtotal, taxes, discount, total, promo_code, booking_ref, status, created_at
		FROM bookings
		WHERE id = $1`

	var b Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.ExperienceID, &b.ExperienceName, &b.FullName, &b.Email, &b.Date, &b.Time, &b.Quantity,
		&b.Subtotal, &b.Taxes, &b.Discount, &b.Total, &b.PromoCode, &b.BookingRef, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// MarkCompleted moves confirmed bookings dated before the given YYYY-MM-DD
// day to completed and returns how many changed.
func (r *Repository) MarkCompleted(ctx context.Context, before string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET status = $1
		WHERE status = $2 AND date < $3`,
		StatusCompleted, StatusConfirmed, before)
	if err != nil {
		return 0, fmt.Errorf("mark completed bookings: %w", err)
	}
	return tag.RowsAffected(), nil
}
