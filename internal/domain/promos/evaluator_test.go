package promos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	for _, subtotal := range []int64{0, 5, 95, 999, 1000, 1045, 123456} {
		d, err := Evaluate(subtotal, "SAVE10")
		require.NoError(t, err)
		assert.Equal(t, (subtotal*10+50)/100, d)

		d, err = Evaluate(subtotal, "FLAT100")
		require.NoError(t, err)
		assert.Equal(t, int64(100), d)

		d, err = Evaluate(subtotal, "BOGUS")
		assert.ErrorIs(t, err, ErrInvalidPromo)
		assert.Zero(t, d)
	}

	d, err := Evaluate(1000, " save10 ")
	require.NoError(t, err)
	assert.Equal(t, int64(100), d)
}

func TestDiscountFor(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		promo   PromoCode
		sub     int64
		want    int64
		wantErr bool
	}{
		{"percentage", PromoCode{DiscountType: DiscountPercentage, Value: 10, Active: true}, 1000, 100, false},
		{"percentage rounds", PromoCode{DiscountType: DiscountPercentage, Value: 10, Active: true}, 1045, 105, false},
		{"flat", PromoCode{DiscountType: DiscountFlat, Value: 100, Active: true}, 1000, 100, false},
		{"flat clamped", PromoCode{DiscountType: DiscountFlat, Value: 100, Active: true}, 60, 60, false},
		{"inactive", PromoCode{DiscountType: DiscountFlat, Value: 100}, 1000, 0, true},
		{"expired", PromoCode{DiscountType: DiscountFlat, Value: 100, Active: true, ExpiresAt: &past}, 1000, 0, true},
		{"not yet expired", PromoCode{DiscountType: DiscountFlat, Value: 100, Active: true, ExpiresAt: &future}, 1000, 100, false},
		{"below minimum", PromoCode{DiscountType: DiscountFlat, Value: 100, Active: true, MinSubtotal: 2000}, 1000, 0, true},
		{"unknown type", PromoCode{DiscountType: "bogus", Value: 100, Active: true}, 1000, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.promo.DiscountFor(tt.sub, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPromo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultsMatchEvaluate(t *testing.T) {
	now := time.Now()
	for _, p := range Defaults() {
		want, err := Evaluate(1000, p.Code)
		require.NoError(t, err)

		got, err := p.DiscountFor(1000, now)
		require.NoError(t, err)
		assert.Equal(t, want, got, p.Code)
	}
}
