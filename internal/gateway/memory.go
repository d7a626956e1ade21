package gateway

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"bookit/internal/domain/bookings"
	"bookit/internal/domain/experiences"
	"bookit/internal/domain/promos"
	"bookit/internal/pricing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var contact = validator.New(validator.WithRequiredStructEnabled())

// Memory is an in-process Gateway that books the way the server does. Contact
// fields are checked with the server's rules, prices come from the slot,
// promos from the reference evaluator, and capacity is reserved atomically.
// Experience ids and slot formats are not checked.
type Memory struct {
	mu          sync.Mutex
	experiences []experiences.Experience
	bookings    map[string]bookings.Booking
	submissions int
}

func NewMemory(list ...experiences.Experience) *Memory {
	m := &Memory{bookings: make(map[string]bookings.Booking)}
	for _, e := range list {
		e.Slots = append(experiences.Slots(nil), e.Slots...)
		m.experiences = append(m.experiences, e)
	}
	return m
}

func (m *Memory) ListExperiences(ctx context.Context) ([]experiences.Experience, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]experiences.Experience, len(m.experiences))
	for i, e := range m.experiences {
		out[i] = cloneExperience(e)
	}
	return out, nil
}

func (m *Memory) GetExperience(ctx context.Context, id string) (*experiences.Experience, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.find(id)
	if e == nil {
		return nil, &APIError{Kind: ErrNotFound, Status: http.StatusNotFound, Message: "Experience not found"}
	}
	out := cloneExperience(*e)
	return &out, nil
}

func (m *Memory) ValidatePromo(ctx context.Context, code string, subtotal int64) (*promos.ValidateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	discount, err := promos.Evaluate(subtotal, code)
	if err != nil {
		return nil, &APIError{Kind: ErrInvalidPromo, Status: http.StatusBadRequest, Message: "Invalid promo code"}
	}
	return &promos.ValidateResult{Code: promos.Normalize(code), Discount: discount, DiscountType: discountType(code)}, nil
}

func (m *Memory) CreateBooking(ctx context.Context, req bookings.CreateRequest) (*bookings.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions++

	if err := contact.Var(strings.TrimSpace(req.FullName), "required,max=100"); err != nil {
		return nil, &APIError{Kind: ErrValidation, Status: http.StatusBadRequest, Message: "Full name is required"}
	}
	if err := contact.Var(strings.TrimSpace(req.Email), "required,email,max=255"); err != nil {
		return nil, &APIError{Kind: ErrValidation, Status: http.StatusBadRequest, Message: "A valid email is required"}
	}
	if req.Quantity < 1 {
		return nil, &APIError{Kind: ErrValidation, Status: http.StatusBadRequest, Message: "Quantity must be at least 1"}
	}

	e := m.find(req.ExperienceID)
	if e == nil {
		return nil, &APIError{Kind: ErrNotFound, Status: http.StatusNotFound, Message: "Experience not found"}
	}

	idx := -1
	for i, s := range e.Slots {
		if s.Date == req.Date && s.Time == req.Time {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &APIError{Kind: ErrValidation, Status: http.StatusBadRequest, Message: "Selected slot does not exist"}
	}
	slot := &e.Slots[idx]
	if slot.AvailableSlots < req.Quantity {
		return nil, &APIError{Kind: ErrConflict, Status: http.StatusConflict, Message: "Not enough slots available"}
	}

	subtotal := slot.Price * int64(req.Quantity)
	var discount int64
	var promo *string
	if strings.TrimSpace(req.PromoCode) != "" {
		d, err := promos.Evaluate(subtotal, req.PromoCode)
		if err != nil {
			return nil, &APIError{Kind: ErrValidation, Status: http.StatusBadRequest, Message: "Invalid promo code"}
		}
		discount = d
		code := promos.Normalize(req.PromoCode)
		promo = &code
	}
	breakdown := pricing.Calculate(slot.Price, int64(req.Quantity), discount)

	slot.AvailableSlots -= req.Quantity

	id := uuid.NewString()
	b := bookings.Booking{
		ID:             id,
		ExperienceID:   e.ID,
		ExperienceName: e.Name,
		FullName:       req.FullName,
		Email:          req.Email,
		Date:           req.Date,
		Time:           req.Time,
		Quantity:       req.Quantity,
		Subtotal:       breakdown.Subtotal,
		Taxes:          breakdown.Taxes,
		Discount:       breakdown.Discount,
		Total:          breakdown.Total,
		PromoCode:      promo,
		BookingRef:     strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
		Status:         bookings.StatusConfirmed,
		CreatedAt:      time.Now().UTC(),
	}
	m.bookings[id] = b
	return &b, nil
}

func (m *Memory) GetBooking(ctx context.Context, id string) (*bookings.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		return nil, &APIError{Kind: ErrNotFound, Status: http.StatusNotFound, Message: "Booking not found"}
	}
	return &b, nil
}

// Submissions is how many CreateBooking calls reached the gateway.
func (m *Memory) Submissions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submissions
}

func (m *Memory) find(id string) *experiences.Experience {
	for i := range m.experiences {
		if m.experiences[i].ID == id {
			return &m.experiences[i]
		}
	}
	return nil
}

func cloneExperience(e experiences.Experience) experiences.Experience {
	e.Slots = append(experiences.Slots(nil), e.Slots...)
	return e
}

func discountType(code string) string {
	for _, p := range promos.Defaults() {
		if p.Code == promos.Normalize(code) {
			return p.DiscountType
		}
	}
	return ""
}
