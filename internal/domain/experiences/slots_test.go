package experiences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSlots() Slots {
	return Slots{
		{Date: "2025-06-02", Time: "09:00", AvailableSlots: 4, TotalSlots: 10, Price: 500},
		{Date: "2025-06-01", Time: "10:00", AvailableSlots: 8, TotalSlots: 10, Price: 500},
		{Date: "2025-06-02", Time: "13:00", AvailableSlots: 0, TotalSlots: 10, Price: 650},
		{Date: "2025-06-01", Time: "15:00", AvailableSlots: 10, TotalSlots: 10, Price: 550},
		{Date: "2025-06-03", Time: "09:00", AvailableSlots: 2, TotalSlots: 10, Price: 500},
	}
}

func TestDistinctDatesKeepsFirstOccurrenceOrder(t *testing.T) {
	assert.Equal(t, []string{"2025-06-02", "2025-06-01", "2025-06-03"}, sampleSlots().DistinctDates())
	assert.Empty(t, Slots{}.DistinctDates())
}

func TestForDate(t *testing.T) {
	got := sampleSlots().ForDate("2025-06-02")
	require.Len(t, got, 2)
	assert.Equal(t, "09:00", got[0].Time)
	assert.Equal(t, "13:00", got[1].Time)

	assert.Empty(t, sampleSlots().ForDate("2030-01-01"))
}

func TestFind(t *testing.T) {
	s, ok := sampleSlots().Find("2025-06-01", "15:00")
	require.True(t, ok)
	assert.Equal(t, int64(550), s.Price)

	_, ok = sampleSlots().Find("2025-06-01", "13:00")
	assert.False(t, ok)
}

func TestAnyBookable(t *testing.T) {
	assert.True(t, sampleSlots().AnyBookable())
	assert.False(t, sampleSlots().ForDate("2025-06-02")[1:].AnyBookable())
	assert.False(t, Slots{}.AnyBookable())
}

func TestAvailability(t *testing.T) {
	tests := []struct {
		available int
		bookable  bool
		text      string
	}{
		{0, false, "Sold out"},
		{1, true, "1 left"},
		{5, true, "5 left"},
		{6, true, "Available"},
	}
	for _, tt := range tests {
		s := Slot{AvailableSlots: tt.available, TotalSlots: 10}
		assert.Equal(t, tt.bookable, s.Bookable())
		assert.Equal(t, tt.text, s.AvailabilityText())
	}
}

func TestClampQuantity(t *testing.T) {
	for q := -3; q <= 15; q++ {
		for c := 0; c <= 10; c++ {
			want := min(max(1, q), max(1, c))
			assert.Equal(t, want, ClampQuantity(q, c), "q=%d c=%d", q, c)
		}
	}
	assert.Equal(t, 1, ClampQuantity(5, 0))
	assert.Equal(t, 8, ClampQuantity(12, 8))
}

func TestValidate(t *testing.T) {
	require.NoError(t, sampleSlots().Validate())

	dup := append(sampleSlots(), Slot{Date: "2025-06-01", Time: "10:00", AvailableSlots: 1, TotalSlots: 1})
	assert.Error(t, dup.Validate())

	over := Slots{{Date: "2025-06-01", Time: "10:00", AvailableSlots: 11, TotalSlots: 10}}
	assert.Error(t, over.Validate())
}
