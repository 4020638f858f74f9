package models

import (
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID            string          `json:"id" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Quantity      int             `json:"quantity"`
	Image         string          `json:"image,omitempty"`
}

// LineTotal is price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingDraft is the minimal address the cart keeps for delivery estimates.
type ShippingDraft struct {
	Zip  string `json:"zip" validate:"omitempty,number,len=6"`
	City string `json:"city"`
}

type CartSnapshot struct {
	Items     []CartItem      `json:"items"`
	CartCount int             `json:"cartCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"totalPrice"`
	Promotion *Promotion      `json:"appliedPromotion"`
	Shipping  ShippingDraft   `json:"shippingAddress"`
	IsOpen    bool            `json:"isCartOpen"`
}

type AddItemRequest struct {
	Item     CartItem `json:"item" validate:"required"`
	RevealUI *bool    `json:"revealUI,omitempty"`
}
