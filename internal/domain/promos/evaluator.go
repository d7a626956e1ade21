package promos

import (
	"strings"
	"time"

	"bookit/internal/pricing"
)

// Defaults are the reference codes seeded into a fresh database.
func Defaults() []PromoCode {
	return []PromoCode{
		{Code: "SAVE10", DiscountType: DiscountPercentage, Value: 10, Active: true},
		{Code: "FLAT100", DiscountType: DiscountFlat, Value: 100, Active: true},
	}
}

// Evaluate is the reference mapping from code to discount:
// SAVE10 is 10% of subtotal rounded, FLAT100 is 100, anything else is
// rejected. Clients must not treat it as authoritative.
func Evaluate(subtotal int64, code string) (int64, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "SAVE10":
		return pricing.Percent(subtotal, 10), nil
	case "FLAT100":
		return 100, nil
	}
	return 0, ErrInvalidPromo
}

// Normalize upper-cases and trims a code as entered.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountFor returns the discount this code grants on subtotal at now.
// Flat discounts never exceed the subtotal.
func (p *PromoCode) DiscountFor(subtotal int64, now time.Time) (int64, error) {
	if !p.Active {
		return 0, ErrInvalidPromo
	}
	if p.ExpiresAt != nil && !now.Before(*p.ExpiresAt) {
		return 0, ErrInvalidPromo
	}
	if subtotal < p.MinSubtotal {
		return 0, ErrInvalidPromo
	}

	switch p.DiscountType {
	case DiscountPercentage:
		return pricing.Percent(subtotal, p.Value), nil
	case DiscountFlat:
		return min(p.Value, subtotal), nil
	}
	return 0, ErrInvalidPromo
}
