package models

import "time"

// CheckoutDraft survives the sign-in redirect so the shopper's input is offered back afterwards.
type CheckoutDraft struct {
	Shipping      ShippingForm  `json:"shippingInfo"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PromoCode     string        `json:"promoCode,omitempty"`
	SavedAt       time.Time     `json:"savedAt"`
}
