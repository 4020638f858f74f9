// Package pricing holds the cart's display-side money arithmetic.
// The server recomputes every amount; these numbers are a preview.
package pricing

import (
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func Subtotal(items []models.CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	return subtotal
}

func MeetsMinimum(subtotal decimal.Decimal, promo *models.Promotion) bool {
	if promo == nil {
		return false
	}

	return subtotal.GreaterThanOrEqual(promo.MinimumPurchase)
}

// Discount never exceeds the subtotal.
func Discount(subtotal decimal.Decimal, promo *models.Promotion) decimal.Decimal {
	if !MeetsMinimum(subtotal, promo) || !subtotal.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal

	switch promo.DiscountType {
	case models.DiscountTypePercentage:
		discount = subtotal.Mul(promo.DiscountValue).Div(hundred)
	case models.DiscountTypeFixed:
		discount = promo.DiscountValue
	default:
		return decimal.Zero
	}

	if discount.IsNegative() {
		return decimal.Zero
	}

	return decimal.Min(discount, subtotal).Round(2)
}

func Total(subtotal decimal.Decimal, promo *models.Promotion) decimal.Decimal {
	total := subtotal.Sub(Discount(subtotal, promo))
	if total.IsNegative() {
		return decimal.Zero
	}

	return total
}
