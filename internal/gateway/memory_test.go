package gateway

import (
	"context"
	"testing"

	"bookit/internal/domain/bookings"
	"bookit/internal/domain/experiences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kayaking() experiences.Experience {
	return experiences.Experience{
		ID:   "exp-1",
		Name: "Kayaking",
		Slots: experiences.Slots{
			{Date: "2026-11-20", Time: "07:00", AvailableSlots: 3, TotalSlots: 10, Price: 500},
			{Date: "2026-11-20", Time: "09:00", AvailableSlots: 0, TotalSlots: 10, Price: 500},
		},
	}
}

func TestMemoryCreateBooking(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(kayaking())

	b, err := m.CreateBooking(ctx, bookings.CreateRequest{
		ExperienceID: "exp-1", FullName: "Asha", Email: "asha@example.com",
		Date: "2026-11-20", Time: "07:00", Quantity: 2, PromoCode: "save10",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), b.Subtotal)
	assert.Equal(t, int64(50), b.Taxes)
	assert.Equal(t, int64(100), b.Discount)
	assert.Equal(t, int64(950), b.Total)
	require.NotNil(t, b.PromoCode)
	assert.Equal(t, "SAVE10", *b.PromoCode)
	assert.Regexp(t, `^[A-Z0-9]{8}$`, b.BookingRef)

	got, err := m.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.BookingRef, got.BookingRef)

	e, err := m.GetExperience(ctx, "exp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, e.Slots[0].AvailableSlots)
}

func TestMemoryCreateBookingConflict(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(kayaking())

	req := bookings.CreateRequest{
		ExperienceID: "exp-1", FullName: "Asha", Email: "asha@example.com",
		Date: "2026-11-20", Time: "09:00", Quantity: 1,
	}
	_, err := m.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, ErrConflict)

	req.Time = "07:00"
	req.Quantity = 4
	_, err = m.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, ErrConflict)

	req.Time = "12:00"
	_, err = m.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, 3, m.Submissions())
}

func TestMemoryCreateBookingChecksContact(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		email    string
	}{
		{"blank name", "  ", "asha@example.com"},
		{"missing email", "Asha", ""},
		{"malformed email", "Asha", "asha@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory(kayaking())
			_, err := m.CreateBooking(context.Background(), bookings.CreateRequest{
				ExperienceID: "exp-1", FullName: tt.fullName, Email: tt.email,
				Date: "2026-11-20", Time: "07:00", Quantity: 1,
			})
			assert.ErrorIs(t, err, ErrValidation)

			e, err := m.GetExperience(context.Background(), "exp-1")
			require.NoError(t, err)
			assert.Equal(t, 3, e.Slots[0].AvailableSlots)
		})
	}
}

func TestMemoryValidatePromo(t *testing.T) {
	m := NewMemory()

	res, err := m.ValidatePromo(context.Background(), "FLAT100", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Discount)
	assert.Equal(t, "flat", res.DiscountType)

	_, err = m.ValidatePromo(context.Background(), "BOGUS", 1000)
	assert.ErrorIs(t, err, ErrInvalidPromo)
}

func TestMemoryIsolatesCallers(t *testing.T) {
	m := NewMemory(kayaking())
	e, err := m.GetExperience(context.Background(), "exp-1")
	require.NoError(t, err)
	e.Slots[0].AvailableSlots = 99

	again, err := m.GetExperience(context.Background(), "exp-1")
	require.NoError(t, err)
	assert.Equal(t, 3, again.Slots[0].AvailableSlots)

	_, err = m.GetExperience(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
