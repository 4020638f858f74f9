package razorpay

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrUnknownAttempt = errors.New("no open payment attempt for order")
	ErrAttemptOpen    = errors.New("payment attempt already open for order")
	ErrMissingOrderID = errors.New("gateway order id is required")
	ErrOrderMismatch  = errors.New("callback order id does not match attempt")
)

type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeFailure
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Payment is the signed payload of the checkout's success handler.
type Payment struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Failure is the error object of the checkout's payment.failed handler.
type Failure struct {
	Code        string
	Description string
	Source      string
	Step        string
	Reason      string
	PaymentID   string
}

// Result is exactly one of a payment, a failure or a cancellation.
type Result struct {
	Outcome Outcome
	Payment *Payment
	Failure *Failure
}

// Attempt is one open hosted checkout, bound to one gateway order.
type Attempt struct {
	OrderID string

	once   sync.Once
	result chan Result
}

func newAttempt(orderID string) *Attempt {
	return &Attempt{OrderID: orderID, result: make(chan Result, 1)}
}

func (a *Attempt) resolve(r Result) bool {
	resolved := false
	a.once.Do(func() {
		a.result <- r
		resolved = true
	})

	return resolved
}

// Wait blocks until the attempt resolves or ctx ends.
func (a *Attempt) Wait(ctx context.Context) (Result, error) {
	select {
	case r := <-a.result:
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// HostedCheckout routes browser callbacks to the attempt they belong to.
type HostedCheckout struct {
	mu       sync.Mutex
	attempts map[string]*Attempt
}

func NewHostedCheckout() *HostedCheckout {
	return &HostedCheckout{attempts: make(map[string]*Attempt)}
}

func (h *HostedCheckout) Open(orderID string) (*Attempt, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.attempts[orderID]; ok {
		return nil, ErrAttemptOpen
	}

	attempt := newAttempt(orderID)
	h.attempts[orderID] = attempt

	return attempt, nil
}

func (h *HostedCheckout) Succeed(orderID string, payment Payment) error {
	if payment.OrderID == "" {
		payment.OrderID = orderID
	}

	if payment.OrderID != orderID {
		return ErrOrderMismatch
	}

	return h.deliver(orderID, Result{Outcome: OutcomeSuccess, Payment: &payment})
}

func (h *HostedCheckout) Fail(orderID string, failure Failure) error {
	return h.deliver(orderID, Result{Outcome: OutcomeFailure, Failure: &failure})
}

func (h *HostedCheckout) Dismiss(orderID string) error {
	return h.deliver(orderID, Result{Outcome: OutcomeCancelled})
}

// Abandon cancels an attempt nobody completed. It reports whether one was open.
func (h *HostedCheckout) Abandon(orderID string) bool {
	return h.deliver(orderID, Result{Outcome: OutcomeCancelled}) == nil
}

func (h *HostedCheckout) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.attempts)
}

func (h *HostedCheckout) deliver(orderID string, r Result) error {
	h.mu.Lock()
	attempt, ok := h.attempts[orderID]
	if ok {
		delete(h.attempts, orderID)
	}
	h.mu.Unlock()

	if !ok || !attempt.resolve(r) {
		return ErrUnknownAttempt
	}

	return nil
}
