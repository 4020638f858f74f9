package pricing_test

import (
	"testing"

	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSubtotal(t *testing.T) {
	items := []models.CartItem{
		{ID: "A", Price: d("100"), Quantity: 3},
		{ID: "B", Price: d("249.50"), Quantity: 2},
	}

	assert.True(t, d("799").Equal(pricing.Subtotal(items)))
	assert.True(t, pricing.Subtotal(nil).IsZero())
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name             string
		subtotal         string
		promo            *models.Promotion
		expectedDiscount string
		expectedTotal    string
	}{
		{
			name:             "No promotion",
			subtotal:         "1500",
			expectedDiscount: "0",
			expectedTotal:    "1500",
		},
		{
			name:             "Percentage",
			subtotal:         "1500",
			promo:            &models.Promotion{DiscountType: models.DiscountTypePercentage, DiscountValue: d("10")},
			expectedDiscount: "150",
			expectedTotal:    "1350",
		},
		{
			name:             "Percentage rounds to paise",
			subtotal:         "999.99",
			promo:            &models.Promotion{DiscountType: models.DiscountTypePercentage, DiscountValue: d("15")},
			expectedDiscount: "150",
			expectedTotal:    "849.99",
		},
		{
			name:             "Fixed below subtotal",
			subtotal:         "1500",
			promo:            &models.Promotion{DiscountType: models.DiscountTypeFixed, DiscountValue: d("200")},
			expectedDiscount: "200",
			expectedTotal:    "1300",
		},
		{
			name:             "Fixed capped at subtotal",
			subtotal:         "1500",
			promo:            &models.Promotion{DiscountType: models.DiscountTypeFixed, DiscountValue: d("2000"), MinimumPurchase: d("1000")},
			expectedDiscount: "1500",
			expectedTotal:    "0",
		},
		{
			name:             "Percentage above one hundred is capped",
			subtotal:         "400",
			promo:            &models.Promotion{DiscountType: models.DiscountTypePercentage, DiscountValue: d("150")},
			expectedDiscount: "400",
			expectedTotal:    "0",
		},
		{
			name:             "Below minimum purchase",
			subtotal:         "500",
			promo:            &models.Promotion{DiscountType: models.DiscountTypeFixed, DiscountValue: d("100"), MinimumPurchase: d("1000")},
			expectedDiscount: "0",
			expectedTotal:    "500",
		},
		{
			name:             "Exactly at minimum purchase",
			subtotal:         "1000",
			promo:            &models.Promotion{DiscountType: models.DiscountTypeFixed, DiscountValue: d("100"), MinimumPurchase: d("1000")},
			expectedDiscount: "100",
			expectedTotal:    "900",
		},
		{
			name:             "Empty cart",
			subtotal:         "0",
			promo:            &models.Promotion{DiscountType: models.DiscountTypeFixed, DiscountValue: d("100")},
			expectedDiscount: "0",
			expectedTotal:    "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			subtotal := d(tc.subtotal)

			discount := pricing.Discount(subtotal, tc.promo)
			total := pricing.Total(subtotal, tc.promo)

			assert.True(t, d(tc.expectedDiscount).Equal(discount), "discount: got %s", discount)
			assert.True(t, d(tc.expectedTotal).Equal(total), "total: got %s", total)
			assert.False(t, total.IsNegative())
			assert.True(t, total.Equal(subtotal.Sub(discount)))
		})
	}
}

func TestMeetsMinimum(t *testing.T) {
	promo := &models.Promotion{MinimumPurchase: d("1000")}

	assert.False(t, pricing.MeetsMinimum(d("999.99"), promo))
	assert.True(t, pricing.MeetsMinimum(d("1000"), promo))
	assert.False(t, pricing.MeetsMinimum(d("5000"), nil))
}
