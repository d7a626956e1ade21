package experiences

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

const selectExperience = `
	SELECT id::text, name, location, description, about, image, base_price, min_age, created_at
	FROM experiences`

// List returns every experience with its slots, newest first.
func (r *Repository) List(ctx context.Context) ([]Experience, error) {
	rows, err := r.db.Query(ctx, selectExperience+` ORDER BY created_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	var out []Experience
	index := make(map[string]int)
	for rows.Next() {
		var e Experience
		if err := rows.Scan(&e.ID, &e.Name, &e.Location, &e.Description, &e.About, &e.Image, &e.BasePrice, &e.MinAge, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		e.Slots = Slots{}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows experiences: %w", err)
	}
	if len(out) == 0 {
		return []Experience{}, nil
	}

	slotRows, err := r.db.Query(ctx, `
		SELECT experience_id::text, id::text, date, time, available_slots, total_slots, price
		FROM slots
		ORDER BY experience_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer slotRows.Close()

	for slotRows.Next() {
		var expID string
		var s Slot
		if err := slotRows.Scan(&expID, &s.ID, &s.Date, &s.Time, &s.AvailableSlots, &s.TotalSlots, &s.Price); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		if i, ok := index[expID]; ok {
			out[i].Slots = append(out[i].Slots, s)
		}
	}
	if err := slotRows.Err(); err != nil {
		return nil, fmt.Errorf("rows slots: %w", err)
	}

	return out, nil
}

// GetByID returns the experience and its slots in source order.
func (r *Repository) GetByID(ctx context.Context, id string) (*Experience, error) {
	var e Experience
	err := r.db.QueryRow(ctx, selectExperience+` WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Location, &e.Description, &e.About, &e.Image, &e.BasePrice, &e.MinAge, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get experience: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id::text, date, time, available_slots, total_slots, price
		FROM slots
		WHERE experience_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("get slots: %w", err)
	}
	defer rows.Close()

	e.Slots = Slots{}
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.ID, &s.Date, &s.Time, &s.AvailableSlots, &s.TotalSlots, &s.Price); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		e.Slots = append(e.Slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows slots: %w", err)
	}

	return &e, nil
}
