// Package gateway is the client side of the booking API. Gateway is the
// contract the checkout workflow depends on; Client implements it over HTTP
// and Memory implements it in process.
package gateway

import (
	"context"

	"bookit/internal/domain/bookings"
	"bookit/internal/domain/experiences"
	"bookit/internal/domain/promos"
)

type Gateway interface {
	ListExperiences(ctx context.Context) ([]experiences.Experience, error)
	GetExperience(ctx context.Context, id string) (*experiences.Experience, error)
	// ValidatePromo asks the server what discount code grants on subtotal.
	// The returned discount is authoritative.
	ValidatePromo(ctx context.Context, code string, subtotal int64) (*promos.ValidateResult, error)
	CreateBooking(ctx context.Context, req bookings.CreateRequest) (*bookings.Booking, error)
	GetBooking(ctx context.Context, id string) (*bookings.Booking, error)
}
