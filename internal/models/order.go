package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderProduct struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Order is a server-owned read model. The storefront never builds one.
type Order struct {
	ID              string          `json:"id"`
	Products        []OrderProduct  `json:"products"`
	ShippingAddress Address         `json:"shippingAddress"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type ConfirmOrderRequest struct {
	PaymentIntentID string        `json:"paymentIntentId"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
}

type OrderConfirmation struct {
	ID            string          `json:"id"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CreatedAt     time.Time       `json:"createdAt"`
}
