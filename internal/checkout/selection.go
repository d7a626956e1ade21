package checkout

import (
	"errors"

	"bookit/internal/domain/experiences"
	"bookit/internal/pricing"
)

// DefaultMaxQuantity bounds the quantity while no time is chosen.
const DefaultMaxQuantity = 10

var (
	ErrUnknownSlot    = errors.New("no such date or time for this experience")
	ErrSoldOut        = errors.New("this slot is sold out")
	ErrNoSlotSelected = errors.New("select a date and time first")
	ErrOverCapacity   = errors.New("quantity exceeds the slots available")
)

// Selection is the date, time and quantity picked on an experience page.
// It belongs to a single caller and is not safe for concurrent use.
type Selection struct {
	experience experiences.Experience
	date       string
	time       string
	quantity   int
}

// NewSelection starts on the experience's first date with no time chosen.
func NewSelection(e experiences.Experience) *Selection {
	s := &Selection{experience: e, quantity: 1}
	if dates := e.Slots.DistinctDates(); len(dates) > 0 {
		s.date = dates[0]
	}
	return s
}

func (s *Selection) Experience() experiences.Experience { return s.experience }
func (s *Selection) Date() string                       { return s.date }
func (s *Selection) Time() string                       { return s.time }
func (s *Selection) Quantity() int                      { return s.quantity }

func (s *Selection) Dates() []string {
	return s.experience.Slots.DistinctDates()
}

// Times lists the slots on the selected date, sold out ones included.
func (s *Selection) Times() experiences.Slots {
	return s.experience.Slots.ForDate(s.date)
}

// Slot returns the chosen slot, if a time has been picked.
func (s *Selection) Slot() (experiences.Slot, bool) {
	if s.time == "" {
		return experiences.Slot{}, false
	}
	return s.experience.Slots.Find(s.date, s.time)
}

// SelectDate switches to date. Changing the date always clears the time.
func (s *Selection) SelectDate(date string) error {
	if len(s.experience.Slots.ForDate(date)) == 0 {
		return ErrUnknownSlot
	}
	if date != s.date {
		s.date = date
		s.time = ""
	}
	return nil
}

// SelectTime picks a time on the current date and re-clamps the quantity to
// that slot's availability.
func (s *Selection) SelectTime(t string) error {
	slot, ok := s.experience.Slots.Find(s.date, t)
	if !ok {
		return ErrUnknownSlot
	}
	if !slot.Bookable() {
		return ErrSoldOut
	}
	s.time = t
	s.quantity = experiences.ClampQuantity(s.quantity, slot.AvailableSlots)
	return nil
}

func (s *Selection) SetQuantity(q int) int {
	s.quantity = experiences.ClampQuantity(q, s.capacity())
	return s.quantity
}

func (s *Selection) Increment() int {
	return s.SetQuantity(s.quantity + 1)
}

func (s *Selection) Decrement() int {
	return s.SetQuantity(s.quantity - 1)
}

func (s *Selection) capacity() int {
	if slot, ok := s.Slot(); ok {
		return slot.AvailableSlots
	}
	return DefaultMaxQuantity
}

// Pricing is the live summary. It is zero until a time is chosen.
func (s *Selection) Pricing() pricing.Breakdown {
	slot, ok := s.Slot()
	if !ok {
		return pricing.Breakdown{}
	}
	return pricing.Calculate(slot.Price, int64(s.quantity), 0)
}

// Confirm turns the selection into a Draft for checkout.
func (s *Selection) Confirm() (*Draft, error) {
	slot, ok := s.Slot()
	if !ok {
		return nil, ErrNoSlotSelected
	}
	if !slot.Bookable() {
		return nil, ErrSoldOut
	}
	if s.quantity < 1 || s.quantity > slot.AvailableSlots {
		return nil, ErrOverCapacity
	}

	return &Draft{
		ExperienceID:   s.experience.ID,
		ExperienceName: s.experience.Name,
		Date:           slot.Date,
		Time:           slot.Time,
		Quantity:       s.quantity,
		UnitPrice:      slot.Price,
	}, nil
}
