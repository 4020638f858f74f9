package models

// CheckoutState tracks a session's progress from cart to payment intent.
type CheckoutState string

const (
	CheckoutStateIdle           CheckoutState = "idle"
	CheckoutStateValidating     CheckoutState = "validating"
	CheckoutStateCreatingIntent CheckoutState = "creating_intent"
	CheckoutStateIntentCreated  CheckoutState = "intent_created"
)

// PaymentState tracks a session's progress on the payment page.
type PaymentState string

const (
	PaymentStateIdle       PaymentState = "idle"
	PaymentStateProcessing PaymentState = "processing"
	PaymentStateSuccess    PaymentState = "success"
	PaymentStateFailed     PaymentState = "failed"
)

func (s PaymentState) IsTerminal() bool {
	return s == PaymentStateSuccess
}

func (s PaymentState) String() string {
	return string(s)
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)
