package checkout

import (
	"testing"

	"bookit/internal/domain/experiences"
	"bookit/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sunrise() experiences.Experience {
	return experiences.Experience{
		ID:   "exp-1",
		Name: "Nandi Hills Sunrise",
		Slots: experiences.Slots{
			{Date: "2025-06-01", Time: "10:00", AvailableSlots: 8, TotalSlots: 10, Price: 500},
			{Date: "2025-06-01", Time: "12:00", AvailableSlots: 0, TotalSlots: 10, Price: 500},
			{Date: "2025-06-02", Time: "10:00", AvailableSlots: 3, TotalSlots: 10, Price: 600},
			{Date: "2025-06-02", Time: "14:00", AvailableSlots: 6, TotalSlots: 10, Price: 600},
		},
	}
}

func TestNewSelectionPicksFirstDate(t *testing.T) {
	s := NewSelection(sunrise())
	assert.Equal(t, "2025-06-01", s.Date())
	assert.Empty(t, s.Time())
	assert.Equal(t, 1, s.Quantity())
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, s.Dates())
	assert.Len(t, s.Times(), 2)
	assert.Equal(t, pricing.Breakdown{}, s.Pricing())

	empty := NewSelection(experiences.Experience{ID: "none"})
	assert.Empty(t, empty.Date())
	_, err := empty.Confirm()
	assert.ErrorIs(t, err, ErrNoSlotSelected)
}

func TestSelectionPricing(t *testing.T) {
	s := NewSelection(sunrise())
	require.NoError(t, s.SelectTime("10:00"))
	s.SetQuantity(2)

	assert.Equal(t, pricing.Breakdown{Subtotal: 1000, Taxes: 50, Total: 1050}, s.Pricing())

	d, err := s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, Draft{
		ExperienceID:   "exp-1",
		ExperienceName: "Nandi Hills Sunrise",
		Date:           "2025-06-01",
		Time:           "10:00",
		Quantity:       2,
		UnitPrice:      500,
	}, *d)
}

func TestSelectDateClearsTime(t *testing.T) {
	s := NewSelection(sunrise())
	require.NoError(t, s.SelectTime("10:00"))

	require.NoError(t, s.SelectDate("2025-06-01"))
	assert.Equal(t, "10:00", s.Time(), "same date keeps the time")

	// 10:00 also exists on the new date, but the choice is still cleared
	require.NoError(t, s.SelectDate("2025-06-02"))
	assert.Empty(t, s.Time())
	_, err := s.Confirm()
	assert.ErrorIs(t, err, ErrNoSlotSelected)

	assert.ErrorIs(t, s.SelectDate("2030-01-01"), ErrUnknownSlot)
	assert.Equal(t, "2025-06-02", s.Date())
}

func TestSelectTimeRejectsSoldOutAndUnknown(t *testing.T) {
	s := NewSelection(sunrise())
	assert.ErrorIs(t, s.SelectTime("12:00"), ErrSoldOut)
	assert.ErrorIs(t, s.SelectTime("14:00"), ErrUnknownSlot)
	assert.Empty(t, s.Time())
}

func TestQuantityClamping(t *testing.T) {
	s := NewSelection(sunrise())

	assert.Equal(t, DefaultMaxQuantity, s.SetQuantity(50))
	assert.Equal(t, 1, s.SetQuantity(-3))
	assert.Equal(t, 1, s.Decrement())

	s.SetQuantity(7)
	require.NoError(t, s.SelectDate("2025-06-02"))
	require.NoError(t, s.SelectTime("10:00"))
	assert.Equal(t, 3, s.Quantity(), "selecting a time re-clamps to its availability")

	assert.Equal(t, 3, s.Increment())
	assert.Equal(t, 2, s.Decrement())
}

func TestConfirmNeverYieldsSoldOutDraft(t *testing.T) {
	e := sunrise()
	s := NewSelection(e)
	for _, slot := range e.Slots {
		_ = s.SelectDate(slot.Date)
		_ = s.SelectTime(slot.Time)
		s.SetQuantity(slot.AvailableSlots + 1)

		d, err := s.Confirm()
		if err != nil {
			continue
		}
		got, ok := e.Slots.Find(d.Date, d.Time)
		require.True(t, ok)
		assert.Positive(t, got.AvailableSlots)
		assert.LessOrEqual(t, d.Quantity, got.AvailableSlots)
	}
}
