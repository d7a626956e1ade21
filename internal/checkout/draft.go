// Package checkout holds the client-side booking flow: choosing a slot and
// quantity on an experience, then collecting contact details, applying a
// promo code and submitting the booking through a gateway.
package checkout

import "bookit/internal/pricing"

// Draft is an unsubmitted booking carried from slot selection into checkout.
// Totals are derived on demand and never stored.
type Draft struct {
	ExperienceID   string
	ExperienceName string
	Date           string
	Time           string
	Quantity       int
	UnitPrice      int64
}

func (d *Draft) Subtotal() int64 {
	return d.Breakdown(0).Subtotal
}

// Breakdown prices the draft with the given discount.
func (d *Draft) Breakdown(discount int64) pricing.Breakdown {
	return pricing.Calculate(d.UnitPrice, int64(d.Quantity), discount)
}
