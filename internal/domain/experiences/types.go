package experiences

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("experience not found")

// Experience is a bookable activity in the catalog. BasePrice is only a
// "starts at" hint; the chargeable price always comes from a Slot.
type Experience struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	About       string    `json:"about"`
	Image       string    `json:"image"`
	BasePrice   int64     `json:"basePrice"`
	MinAge      int       `json:"minAge"`
	Slots       Slots     `json:"slots"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// Slot is one (date, time) instance of an experience.
type Slot struct {
	ID             string `json:"id,omitempty"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	AvailableSlots int    `json:"availableSlots"`
	TotalSlots     int    `json:"totalSlots"`
	Price          int64  `json:"price"`
}

type Store interface {
	List(ctx context.Context) ([]Experience, error)
	GetByID(ctx context.Context, id string) (*Experience, error)
}
