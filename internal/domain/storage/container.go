package storage

import (
	"bookit/internal/domain/bookings"
	"bookit/internal/domain/experiences"
	"bookit/internal/domain/promos"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool        *pgxpool.Pool
	Experiences experiences.Store
	Bookings    bookings.Store
	Promos      promos.Store
}

func NewContainer(db *pgxpool.Pool, refs *bookings.ReferenceGenerator) *Container {
	return &Container{
		pool:        db,
		Experiences: experiences.NewRepository(db),
		Bookings:    bookings.NewRepository(db, refs),
		Promos:      promos.NewRepository(db),
	}
}

// Pool exposes the underlying pool for health checks.
func (c *Container) Pool() *pgxpool.Pool {
	return c.pool
}
