package models

import (
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// Promotion is a server-validated discount rule.
type Promotion struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Title           string          `json:"title"`
	DiscountType    DiscountType    `json:"discountType"`
	DiscountValue   decimal.Decimal `json:"discountValue"`
	MinimumPurchase decimal.Decimal `json:"minimumPurchase"`
	Scope           string          `json:"scope,omitempty"`
}

type ApplyPromotionRequest struct {
	Code string `json:"code" validate:"required"`
}
