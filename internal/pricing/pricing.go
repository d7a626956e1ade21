package pricing

// TaxRatePercent is the flat tax applied to every subtotal.
const TaxRatePercent = 5

// Breakdown is the price of a booking. Total is always derived from the
// other three fields.
type Breakdown struct {
	Subtotal int64 `json:"subtotal"`
	Taxes    int64 `json:"taxes"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// Calculate prices quantity units at unitPrice and applies discount.
// The discount is clamped to [0, subtotal]. A non-positive price or quantity
// means nothing is selected yet and yields the zero Breakdown.
func Calculate(unitPrice, quantity, discount int64) Breakdown {
	if unitPrice <= 0 || quantity <= 0 {
		return Breakdown{}
	}

	subtotal := unitPrice * quantity
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}

	taxes := Taxes(subtotal)
	return Breakdown{
		Subtotal: subtotal,
		Taxes:    taxes,
		Discount: discount,
		Total:    subtotal + taxes - discount,
	}
}

// Taxes returns subtotal * 5% rounded half-up to a whole currency unit.
func Taxes(subtotal int64) int64 {
	return roundPercent(subtotal, TaxRatePercent)
}

// Percent returns pct% of amount rounded half-up. Used for percentage promos.
func Percent(amount, pct int64) int64 {
	return roundPercent(amount, pct)
}

func roundPercent(amount, pct int64) int64 {
	if amount <= 0 || pct <= 0 {
		return 0
	}
	return (amount*pct + 50) / 100
}
