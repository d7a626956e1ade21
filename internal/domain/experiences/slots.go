package experiences

import "fmt"

// LowAvailability is the threshold under which the remaining count is shown.
const LowAvailability = 5

// Slots is an experience's slot collection in source order.
type Slots []Slot

// DistinctDates returns each date once, in order of first occurrence.
func (s Slots) DistinctDates() []string {
	seen := make(map[string]bool, len(s))
	dates := make([]string, 0, len(s))
	for _, slot := range s {
		if !seen[slot.Date] {
			seen[slot.Date] = true
			dates = append(dates, slot.Date)
		}
	}
	return dates
}

// ForDate returns the slots on date, in source order.
func (s Slots) ForDate(date string) Slots {
	var out Slots
	for _, slot := range s {
		if slot.Date == date {
			out = append(out, slot)
		}
	}
	return out
}

// Find returns the slot at (date, time).
func (s Slots) Find(date, time string) (Slot, bool) {
	for _, slot := range s {
		if slot.Date == date && slot.Time == time {
			return slot, true
		}
	}
	return Slot{}, false
}

// Validate checks the capacity bounds and (date, time) uniqueness.
func (s Slots) Validate() error {
	seen := make(map[string]bool, len(s))
	for _, slot := range s {
		if slot.AvailableSlots < 0 || slot.AvailableSlots > slot.TotalSlots {
			return fmt.Errorf("slot %s %s: available %d outside [0, %d]", slot.Date, slot.Time, slot.AvailableSlots, slot.TotalSlots)
		}
		key := slot.Date + " " + slot.Time
		if seen[key] {
			return fmt.Errorf("duplicate slot %s", key)
		}
		seen[key] = true
	}
	return nil
}

// AnyBookable reports whether at least one slot still has capacity.
func (s Slots) AnyBookable() bool {
	for _, slot := range s {
		if slot.Bookable() {
			return true
		}
	}
	return false
}

func (s Slot) Bookable() bool {
	return s.AvailableSlots > 0
}

// AvailabilityText is the short status shown next to a time.
func (s Slot) AvailabilityText() string {
	switch {
	case s.AvailableSlots <= 0:
		return "Sold out"
	case s.AvailableSlots <= LowAvailability:
		return fmt.Sprintf("%d left", s.AvailableSlots)
	default:
		return "Available"
	}
}

// ClampQuantity bounds a requested quantity to [1, max(1, capacity)].
func ClampQuantity(requested, capacity int) int {
	upper := max(1, capacity)
	return min(max(1, requested), upper)
}
