package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/pkg/graphql"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrMalformedResponse = errors.New("malformed response")
)

// Backend is the remote storefront API. Every durable record lives behind it.
type Backend interface {
	ValidatePromotion(ctx context.Context, code string) (*models.Promotion, error)
	CreatePaymentIntent(ctx context.Context, req *models.CreatePaymentIntentRequest) (*models.PaymentIntentRef, error)
	GetPaymentIntent(ctx context.Context, id string) (*models.PaymentIntent, error)
	ConfirmOrder(ctx context.Context, req *models.ConfirmOrderRequest) (*models.OrderConfirmation, error)
	CreateGatewayOrder(ctx context.Context, req *models.CreateGatewayOrderRequest) (*models.GatewayOrder, error)
	VerifyPaymentAndConfirm(ctx context.Context, req *models.VerifyPaymentRequest) (*models.VerifyPaymentResult, error)
	ReportPaymentFailure(ctx context.Context, req *models.PaymentFailureReport) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	Ping(ctx context.Context) error
}

// Executor runs one GraphQL operation. *graphql.Client satisfies it.
type Executor interface {
	Execute(ctx context.Context, request graphql.Request, out any) error
}

type graphqlBackend struct {
	client Executor
}

func NewGraphQLBackend(client Executor) Backend {
	return &graphqlBackend{client: client}
}

func (b *graphqlBackend) ValidatePromotion(ctx context.Context, code string) (*models.Promotion, error) {

	var data struct {
		ValidatePromotion *models.Promotion `json:"validatePromotion"`
	}

	err := b.client.Execute(ctx, graphql.Request{
		Query:     validatePromotionQuery,
		Variables: map[string]any{"code": code},
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("validatePromotion: %w", err)
	}

	promo := data.ValidatePromotion
	if promo == nil {
		return nil, fmt.Errorf("validatePromotion %q: %w", code, ErrNotFound)
	}

	switch promo.DiscountType {
	case models.DiscountTypePercentage, models.DiscountTypeFixed:
	default:
		return nil, fmt.Errorf("validatePromotion: unknown discount type %q: %w", promo.DiscountType, ErrMalformedResponse)
	}

	if promo.DiscountValue.IsNegative() {
		return nil, fmt.Errorf("validatePromotion: negative discount value: %w", ErrMalformedResponse)
	}

	return promo, nil
}

func (b *graphqlBackend) CreatePaymentIntent(ctx context.Context, req *models.CreatePaymentIntentRequest) (*models.PaymentIntentRef, error) {

	products := make([]map[string]any, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, map[string]any{
			"productId": p.ProductID,
			"quantity":  p.Quantity,
			"price":     money(p.Price),
		})
	}

	input := map[string]any{
		"userId":          req.UserID,
		"products":        products,
		"totalAmount":     money(req.TotalAmount),
		"shippingAddress": req.ShippingAddress,
		"billingAddress":  req.BillingAddress,
		"paymentMethod":   req.PaymentMethod,
	}

	var data struct {
		CreatePaymentIntent *models.PaymentIntentRef `json:"createPaymentIntent"`
	}

	err := b.client.Execute(ctx, graphql.Request{
		Query:     createPaymentIntentMutation,
		Variables: map[string]any{"input": input},
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("createPaymentIntent: %w", err)
	}

	ref := data.CreatePaymentIntent
	if ref == nil || ref.ID == "" {
		return nil, fmt.Errorf("createPaymentIntent: missing intent id: %w", ErrMalformedResponse)
	}

	return ref, nil
}

func (b *graphqlBackend) GetPaymentIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {

	var data struct {
		GetPaymentIntent *models.PaymentIntent `json:"getPaymentIntent"`
	}

	err := b.client.Execute(ctx, graphql.Request{
		Query:     getPaymentIntentQuery,
		Variables: map[string]any{"id": id},
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("getPaymentIntent: %w", err)
	}

	intent := data.GetPaymentIntent
	if intent == nil {
		return nil, fmt.Errorf("getPaymentIntent %s: %w", id, ErrNotFound)
	}

	if intent.ID == "" || intent.Status == "" {
		return nil, fmt.Errorf("getPaymentIntent %s: missing id or status: %w", id, ErrMalformedResponse)
	}

	return intent, nil
}

func (b *graphqlBackend) ConfirmOrder(ctx context.Context, req *models.ConfirmOrderRequest) (*models.OrderConfirmation, error) {

	var data struct {
		ConfirmOrder *models.OrderConfirmation `json:"confirmOrder"`
	}

	err := b.client.Execute(ctx, graphql.Request{
		Query: confirmOrderMutation,
		Variables: map[string]any{
			"paymentIntentId": req.PaymentIntentID,
			"paymentStatus":   req.PaymentStatus,
		},
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("confirmOrder: %w", err)
	}

	order := data.ConfirmOrder
	if order == nil || order.ID == "" {
		return nil, fmt.Errorf("confirmOrder: missing order id: %w", ErrMalformedResponse)
	}

	return order, nil
}

func (b *graphqlBackend) CreateGatewayOrder(ctx context.Context, req *models.CreateGatewayOrderRequest) (*models.GatewayOrder, error) {

	input := map[string]any{
		"intentId": req.IntentID,
		"userId":   req.UserID,
		"amount":   money(req.Amount),
		"currency": req.Currency,
	}
	if len(req.Notes) > 0 {
		input["notes"] = req.Notes
	}

	var data struct {
		CreateRazorpayOrder *models.GatewayOrder `json:"createRazorpayOrder"`
	}

	err := b.client.Execute(ctx, graphql.Request{
		Query:     createRazorpayOrderMutation,
		Variables: map[string]any{"input": input},
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("createRazorpayOrder: %w", err)
	}

	order := data.CreateRazorpayOrder
	if order == nil || order.RazorpayOrderID == "" {
		return nil, fmt.Errorf("createRazorpayOrder: missing gateway order id: %w", ErrMalformedResponse)
	}

	if order.Amount <= 0 {
		return nil, fmt.Errorf("createRazorpayOrder: non-positive amount %d: %w", order.Amount, ErrMalformedResponse)
	}

	return order, nil
}

func (b *graphqlBackend) VerifyPaymentAndConfirm(ctx context.Context, req *models.VerifyPaymentRequest) (*models.VerifyPaymentResult, error) {

	var data struct {
		Verify *models.VerifyPaymentResult `json:"verifyRazorpayPaymentAndConfirmOrder"`
	}

	err := b.client.Execute(ctx, graphql.Request{
		Query: verifyRazorpayPaymentMutation,
		Variables: map[string]any{"input": map[string]any{
			"intentId":          req.IntentID,
			"razorpayOrderId":   req.RazorpayOrderID,
			"razorpayPaymentId": req.RazorpayPaymentID,
			"razorpaySignature": req.RazorpaySignature,
		}},
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("verifyRazorpayPaymentAndConfirmOrder: %w", err)
	}

	if data.Verify == nil {
		return nil, fmt.Errorf("verifyRazorpayPaymentAndConfirmOrder: empty result: %w", ErrMalformedResponse)
	}

	if data.Verify.Success && data.Verify.OrderID == "" {
		return nil, fmt.Errorf("verifyRazorpayPaymentAndConfirmOrder: success without order id: %w", ErrMalformedResponse)
	}

	return data.Verify, nil
}

func (b *graphqlBackend) ReportPaymentFailure(ctx context.Context, req *models.PaymentFailureReport) error {

	err := b.client.Execute(ctx, graphql.Request{
		Query: handleRazorpayPaymentFailureMutation,
		Variables: map[string]any{
			"razorpayOrderId":  req.RazorpayOrderID,
			"errorCode":        req.ErrorCode,
			"errorDescription": req.ErrorDescription,
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("handleRazorpayPaymentFailure: %w", err)
	}

	return nil
}

func (b *graphqlBackend) GetOrder(ctx context.Context, id string) (*models.Order, error) {

	var data struct {
		GetOrder *models.Order `json:"getOrder"`
	}

	err := b.client.Execute(ctx, graphql.Request{
		Query:     getOrderQuery,
		Variables: map[string]any{"id": id},
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("getOrder: %w", err)
	}

	if data.GetOrder == nil {
		return nil, fmt.Errorf("getOrder %s: %w", id, ErrNotFound)
	}

	return data.GetOrder, nil
}

func (b *graphqlBackend) Ping(ctx context.Context) error {
	return b.client.Execute(ctx, graphql.Request{Query: pingQuery}, nil)
}

// The API's money scalars are plain floats in rupees.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
