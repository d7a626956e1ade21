package promos

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidPromo = errors.New("invalid promo code")

const (
	DiscountPercentage = "percentage"
	DiscountFlat       = "flat"
)

// PromoCode is a redeemable discount. Value is a percent for percentage codes
// and an amount in currency units for flat codes.
type PromoCode struct {
	Code         string     `json:"code"`
	DiscountType string     `json:"discountType"`
	Value        int64      `json:"value"`
	MinSubtotal  int64      `json:"minSubtotal"`
	Active       bool       `json:"active"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// ValidateRequest is the body of POST /promo/validate.
type ValidateRequest struct {
	Code     string `json:"code" validate:"required,max=32"`
	Subtotal int64  `json:"subtotal" validate:"gte=0"`
}

// ValidateResult is what the server grants for a code.
type ValidateResult struct {
	Code         string `json:"code"`
	Discount     int64  `json:"discount"`
	DiscountType string `json:"discountType"`
}

type Store interface {
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	Upsert(ctx context.Context, p *PromoCode) error
}
