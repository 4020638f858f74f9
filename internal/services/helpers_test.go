package service_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ecoplaster/storefront/internal/backend/mocks"
	"github.com/ecoplaster/storefront/internal/cache"
	"github.com/ecoplaster/storefront/internal/cart"
	"github.com/ecoplaster/storefront/internal/config"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/internal/session"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const sessionID = "sess-1"

var (
	paths = config.Checkout{
		CheckoutPath:         "/checkout",
		PaymentPath:          "/payment",
		SuccessPath:          "/order-success",
		ExpiredRedirectDelay: 3 * time.Second,
		DraftTTL:             time.Hour,
	}
	rzpConfig = config.Razorpay{KeyID: "rzp_test_key", Currency: "INR", BrandName: "EcoPlaster"}
	shopper   = &models.Claims{UserID: "user-1", Name: "Asha Rao", Email: "asha@example.com", Phone: "9876543210"}
)

type fixture struct {
	api        *mocks.Backend
	cache      cache.Cache
	redis      *miniredis.Miniredis
	carts      *cart.Registry
	drafts     session.DraftStore
	lastOrders session.LastOrderStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: time.Hour})

	return &fixture{
		api:        mocks.NewBackend(t),
		cache:      c,
		redis:      mr,
		carts:      cart.NewRegistry(c, time.Hour),
		drafts:     session.NewDraftStore(c, paths.DraftTTL),
		lastOrders: session.NewLastOrderStore(c),
	}
}

// fill puts items in the session's cart.
func (f *fixture) fill(t *testing.T, items ...models.CartItem) {
	t.Helper()

	store := f.carts.Open(t.Context(), sessionID)
	for _, it := range items {
		_, err := store.AddToCart(t.Context(), it, false)
		require.NoError(t, err)
	}
}

func plaster(id string, price int64, qty int) models.CartItem {
	return models.CartItem{
		ID:            id,
		Name:          "Eco plaster " + id,
		Price:         decimal.NewFromInt(price),
		OriginalPrice: decimal.NewFromInt(price),
		Quantity:      qty,
	}
}

func validForm() models.ShippingForm {
	return models.ShippingForm{
		Name:   "Asha Rao",
		Email:  "asha@example.com",
		Street: "12 MG Road",
		City:   "Bengaluru",
		State:  "Karnataka",
		Zip:    "560001",
		Phone:  "9876543210",
	}
}

// scriptServer serves the checkout script with the given status.
func scriptServer(t *testing.T, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("window.Razorpay = function() {};"))
	}))
	t.Cleanup(srv.Close)

	return srv
}
