package backend_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecoplaster/storefront/internal/backend"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/pkg/graphql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI answers every operation with body and records the last request.
func fakeAPI(t *testing.T, body string) (backend.Backend, *graphql.Request) {
	t.Helper()

	captured := &graphql.Request{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return backend.NewGraphQLBackend(graphql.NewClient(server.URL, 5*time.Second)), captured
}

func TestValidatePromotion(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		api, captured := fakeAPI(t, `{"data":{"validatePromotion":{"id":"p1","title":"Monsoon","code":"RAIN10","discountType":"PERCENTAGE","discountValue":10,"minimumPurchase":1000}}}`)

		// Act
		promo, err := api.ValidatePromotion(t.Context(), "RAIN10")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "RAIN10", captured.Variables["code"])
		assert.Equal(t, models.DiscountTypePercentage, promo.DiscountType)
		assert.True(t, promo.DiscountValue.Equal(decimal.NewFromInt(10)))
		assert.True(t, promo.MinimumPurchase.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("Failure - Null Payload", func(t *testing.T) {
		api, _ := fakeAPI(t, `{"data":{"validatePromotion":null}}`)

		promo, err := api.ValidatePromotion(t.Context(), "NOPE")

		assert.Nil(t, promo)
		assert.ErrorIs(t, err, backend.ErrNotFound)
	})

	t.Run("Failure - Unknown Discount Type", func(t *testing.T) {
		api, _ := fakeAPI(t, `{"data":{"validatePromotion":{"id":"p1","code":"X","discountType":"BOGO","discountValue":1}}}`)

		_, err := api.ValidatePromotion(t.Context(), "X")

		assert.ErrorIs(t, err, backend.ErrMalformedResponse)
	})

	t.Run("Failure - Remote Rejection Preserved", func(t *testing.T) {
		api, _ := fakeAPI(t, `{"errors":[{"message":"Promotion has expired"}]}`)

		_, err := api.ValidatePromotion(t.Context(), "OLD")

		var remoteErr *graphql.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, "Promotion has expired", remoteErr.FirstMessage())
	})
}

func TestCreatePaymentIntent(t *testing.T) {
	address := models.Address{Type: models.AddressTypeHome, Street: "12 MG Road", City: "Pune", State: "MH", Zip: "411001", Country: "India", PhoneNumber: "9876543210"}
	req := &models.CreatePaymentIntentRequest{
		UserID:          "u1",
		Products:        []models.IntentProduct{{ProductID: "eco-25kg", Quantity: 2, Price: decimal.NewFromInt(1200)}},
		TotalAmount:     decimal.RequireFromString("2160.00"),
		ShippingAddress: address,
		BillingAddress:  address,
		PaymentMethod:   models.PaymentMethodRazorpay,
	}

	t.Run("Success - Money Sent As Numbers", func(t *testing.T) {
		// Arrange
		api, captured := fakeAPI(t, `{"data":{"createPaymentIntent":{"id":"pi_1","amount":2160,"status":"pending"}}}`)

		// Act
		ref, err := api.CreatePaymentIntent(t.Context(), req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "pi_1", ref.ID)
		assert.Equal(t, models.IntentStatusPending, ref.Status)

		input, ok := captured.Variables["input"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 2160.0, input["totalAmount"])
		assert.Equal(t, "razorpay", input["paymentMethod"])

		products, ok := input["products"].([]any)
		require.True(t, ok)
		require.Len(t, products, 1)
		assert.Equal(t, 1200.0, products[0].(map[string]any)["price"])
	})

	t.Run("Failure - Missing Id", func(t *testing.T) {
		api, _ := fakeAPI(t, `{"data":{"createPaymentIntent":{"amount":2160}}}`)

		_, err := api.CreatePaymentIntent(t.Context(), req)

		assert.ErrorIs(t, err, backend.ErrMalformedResponse)
	})
}

func TestGetPaymentIntent(t *testing.T) {
	t.Run("Success - Expired Intent", func(t *testing.T) {
		api, _ := fakeAPI(t, `{"data":{"getPaymentIntent":{"id":"pi_1","totalAmount":500,"status":"expired","paymentMethod":"razorpay"}}}`)

		intent, err := api.GetPaymentIntent(t.Context(), "pi_1")

		require.NoError(t, err)
		assert.True(t, intent.IsExpired())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		api, _ := fakeAPI(t, `{"data":{"getPaymentIntent":null}}`)

		_, err := api.GetPaymentIntent(t.Context(), "missing")

		assert.ErrorIs(t, err, backend.ErrNotFound)
	})

	t.Run("Failure - Missing Status", func(t *testing.T) {
		api, _ := fakeAPI(t, `{"data":{"getPaymentIntent":{"id":"pi_1"}}}`)

		_, err := api.GetPaymentIntent(t.Context(), "pi_1")

		assert.ErrorIs(t, err, backend.ErrMalformedResponse)
	})
}

func TestCreateGatewayOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		api, captured := fakeAPI(t, `{"data":{"createRazorpayOrder":{"razorpayOrderId":"order_R1","amount":216000,"currency":"INR","key":"rzp_test"}}}`)

		// Act
		order, err := api.CreateGatewayOrder(t.Context(), &models.CreateGatewayOrderRequest{
			IntentID: "pi_1",
			UserID:   "u1",
			Amount:   decimal.NewFromInt(2160),
			Currency: "INR",
			Notes:    map[string]string{"intentId": "pi_1"},
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "order_R1", order.RazorpayOrderID)
		assert.Equal(t, int64(216000), order.Amount)

		input := captured.Variables["input"].(map[string]any)
		assert.Equal(t, 2160.0, input["amount"])
		assert.Equal(t, "INR", input["currency"])
		assert.NotNil(t, input["notes"])
	})

	t.Run("Failure - Zero Amount", func(t *testing.T) {
		api, _ := fakeAPI(t, `{"data":{"createRazorpayOrder":{"razorpayOrderId":"order_R1","amount":0}}}`)

		_, err := api.CreateGatewayOrder(t.Context(), &models.CreateGatewayOrderRequest{IntentID: "pi_1"})

		assert.ErrorIs(t, err, backend.ErrMalformedResponse)
	})
}

func TestVerifyPaymentAndConfirm(t *testing.T) {
	req := &models.VerifyPaymentRequest{IntentID: "pi_1", RazorpayOrderID: "order_R1", RazorpayPaymentID: "pay_1", RazorpaySignature: "sig"}

	t.Run("Success", func(t *testing.T) {
		api, captured := fakeAPI(t, `{"data":{"verifyRazorpayPaymentAndConfirmOrder":{"success":true,"orderId":"O123","status":"confirmed"}}}`)

		result, err := api.VerifyPaymentAndConfirm(t.Context(), req)

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "O123", result.OrderID)
		input := captured.Variables["input"].(map[string]any)
		assert.Equal(t, "sig", input["razorpaySignature"])
	})

	t.Run("Success - Verification Declined", func(t *testing.T) {
		api, _ := fakeAPI(t, `{"data":{"verifyRazorpayPaymentAndConfirmOrder":{"success":false,"status":"failed"}}}`)

		result, err := api.VerifyPaymentAndConfirm(t.Context(), req)

		require.NoError(t, err)
		assert.False(t, result.Success)
	})

	t.Run("Failure - Success Without Order", func(t *testing.T) {
		api, _ := fakeAPI(t, `{"data":{"verifyRazorpayPaymentAndConfirmOrder":{"success":true}}}`)

		_, err := api.VerifyPaymentAndConfirm(t.Context(), req)

		assert.ErrorIs(t, err, backend.ErrMalformedResponse)
	})
}

func TestReportPaymentFailure(t *testing.T) {
	api, captured := fakeAPI(t, `{"data":{"handleRazorpayPaymentFailure":true}}`)

	err := api.ReportPaymentFailure(t.Context(), &models.PaymentFailureReport{
		RazorpayOrderID:  "order_R1",
		ErrorCode:        "BAD_REQUEST_ERROR",
		ErrorDescription: "Payment declined by bank",
	})

	require.NoError(t, err)
	assert.Equal(t, "order_R1", captured.Variables["razorpayOrderId"])
	assert.Equal(t, "Payment declined by bank", captured.Variables["errorDescription"])
}

func TestConfirmOrderAndGetOrder(t *testing.T) {
	t.Run("Confirm Cash On Delivery", func(t *testing.T) {
		api, captured := fakeAPI(t, `{"data":{"confirmOrder":{"id":"O9","status":"confirmed","paymentStatus":"pending","totalAmount":900,"createdAt":"2026-01-02T10:00:00Z"}}}`)

		order, err := api.ConfirmOrder(t.Context(), &models.ConfirmOrderRequest{PaymentIntentID: "pi_9", PaymentStatus: models.PaymentStatusPending})

		require.NoError(t, err)
		assert.Equal(t, "O9", order.ID)
		assert.Equal(t, "pi_9", captured.Variables["paymentIntentId"])
	})

	t.Run("Get Order Not Found", func(t *testing.T) {
		api, _ := fakeAPI(t, `{"data":{"getOrder":null}}`)

		_, err := api.GetOrder(t.Context(), "O404")

		assert.ErrorIs(t, err, backend.ErrNotFound)
	})
}
