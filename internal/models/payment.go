package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodRazorpay       PaymentMethod = "razorpay"
	PaymentMethodCashOnDelivery PaymentMethod = "cod"
)

type IntentStatus string

const (
	IntentStatusPending   IntentStatus = "pending"
	IntentStatusExpired   IntentStatus = "expired"
	IntentStatusCompleted IntentStatus = "completed"
)

type IntentProduct struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// PaymentIntent is a server-held draft order. The storefront only references it by ID.
type PaymentIntent struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Products        []IntentProduct `json:"products"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress Address         `json:"shippingAddress"`
	BillingAddress  Address         `json:"billingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Status          IntentStatus    `json:"status"`
	ExpiresAt       *time.Time      `json:"expiresAt,omitempty"`
}

func (p *PaymentIntent) IsExpired() bool {
	return p.Status == IntentStatusExpired
}

type CreatePaymentIntentRequest struct {
	UserID          string          `json:"userId"`
	Products        []IntentProduct `json:"products"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress Address         `json:"shippingAddress"`
	BillingAddress  Address         `json:"billingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
}

type PaymentIntentRef struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Status IntentStatus    `json:"status"`
}

type PlaceOrderRequest struct {
	Shipping      ShippingForm  `json:"shippingInfo" validate:"required"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=razorpay cod"`
}

type PlaceOrderResponse struct {
	IntentID    string          `json:"intentId"`
	Amount      decimal.Decimal `json:"amount"`
	RedirectURL string          `json:"redirectUrl"`
}

type CreateGatewayOrderRequest struct {
	IntentID string            `json:"intentId"`
	UserID   string            `json:"userId"`
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// GatewayOrder is created by the payment processor for one payment attempt.
type GatewayOrder struct {
	RazorpayOrderID string `json:"razorpayOrderId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Key             string `json:"key"`
}

// GatewayCallback is the hosted checkout's success payload.
type GatewayCallback struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// UnmarshalJSON accepts both the gateway's snake_case keys and camelCase keys.
func (c *GatewayCallback) UnmarshalJSON(data []byte) error {
	var raw struct {
		SnakeOrderID   string `json:"razorpay_order_id"`
		SnakePaymentID string `json:"razorpay_payment_id"`
		SnakeSignature string `json:"razorpay_signature"`
		CamelOrderID   string `json:"razorpayOrderId"`
		CamelPaymentID string `json:"razorpayPaymentId"`
		CamelSignature string `json:"razorpaySignature"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.RazorpayOrderID = firstNonEmpty(raw.SnakeOrderID, raw.CamelOrderID)
	c.RazorpayPaymentID = firstNonEmpty(raw.SnakePaymentID, raw.CamelPaymentID)
	c.RazorpaySignature = firstNonEmpty(raw.SnakeSignature, raw.CamelSignature)

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

// GatewayFailure mirrors the error object the hosted checkout hands to its failure handler.
type GatewayFailure struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Source      string `json:"source,omitempty"`
	Step        string `json:"step,omitempty"`
	Reason      string `json:"reason,omitempty"`
	OrderID     string `json:"order_id,omitempty"`
	PaymentID   string `json:"payment_id,omitempty"`
}

type VerifyPaymentRequest struct {
	IntentID          string `json:"intentId"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

type VerifyPaymentResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type PaymentFailureReport struct {
	RazorpayOrderID  string `json:"razorpayOrderId"`
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}

type Prefill struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// CheckoutOptions is everything the browser needs to open the hosted checkout.
type CheckoutOptions struct {
	Key         string            `json:"key"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	OrderID     string            `json:"order_id"`
	Prefill     Prefill           `json:"prefill"`
	Notes       map[string]string `json:"notes,omitempty"`
}

type PaymentEventType string

const (
	PaymentEventSuccess   PaymentEventType = "payment.success"
	PaymentEventFailed    PaymentEventType = "payment.failed"
	PaymentEventDismissed PaymentEventType = "modal.dismiss"
)

// PaymentEvent is posted by the browser when one of the hosted checkout's handlers fires.
type PaymentEvent struct {
	Type    PaymentEventType `json:"type" validate:"required,oneof=payment.success payment.failed modal.dismiss"`
	Payment *GatewayCallback `json:"payment,omitempty"`
	Error   *GatewayFailure  `json:"error,omitempty"`
}

type PaymentView struct {
	Intent        *PaymentIntent     `json:"intent"`
	PayEnabled    bool               `json:"payEnabled"`
	Reason        string             `json:"reason,omitempty"`
	PreviewTotal  decimal.Decimal    `json:"previewTotal"`
	TotalMismatch bool               `json:"totalMismatch"`
	Status        *PaymentStatusView `json:"status"`
}

type PaymentStatusView struct {
	State       PaymentState `json:"state"`
	Message     string       `json:"message,omitempty"`
	OrderID     string       `json:"orderId,omitempty"`
	RedirectURL string       `json:"redirectUrl,omitempty"`
}

type ConfirmationResult struct {
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	RedirectURL string `json:"redirectUrl"`
}
