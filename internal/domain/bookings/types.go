package bookings

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("booking not found")
	ErrConflict = errors.New("not enough availability for this slot")
)

const (
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking is a persisted reservation. Prices are snapshotted at creation.
type Booking struct {
	ID             string    `json:"id"`
	ExperienceID   string    `json:"experienceId"`
	ExperienceName string    `json:"experienceName"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Quantity       int       `json:"quantity"`
	Subtotal       int64     `json:"subtotal"`
	Taxes          int64     `json:"taxes"`
	Discount       int64     `json:"discount"`
	Total          int64     `json:"total"`
	PromoCode      *string   `json:"promoCode,omitempty"`
	BookingRef     string    `json:"bookingRefId"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateRequest is the body of POST /bookings. Prices are never accepted
// from the client; the server derives them from the slot.
type CreateRequest struct {
	ExperienceID string `json:"experienceId" validate:"required,uuid"`
	FullName     string `json:"fullName" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Date         string `json:"date" validate:"required,slotdate"`
	Time         string `json:"time" validate:"required,slottime"`
	Quantity     int    `json:"quantity" validate:"required,gte=1,lte=50"`
	PromoCode    string `json:"promoCode,omitempty" validate:"omitempty,max=32"`
}

type Store interface {
	// Create reserves Quantity seats on the slot and inserts the booking in
	// one transaction. It returns ErrConflict when capacity is insufficient.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	MarkCompleted(ctx context.Context, before string) (int64, error)
}
