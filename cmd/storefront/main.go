package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecoplaster/storefront/internal/api/handlers"
	"github.com/ecoplaster/storefront/internal/api/middleware"
	"github.com/ecoplaster/storefront/internal/backend"
	"github.com/ecoplaster/storefront/internal/cache"
	"github.com/ecoplaster/storefront/internal/cart"
	"github.com/ecoplaster/storefront/internal/config"
	"github.com/ecoplaster/storefront/internal/gateway"
	"github.com/ecoplaster/storefront/internal/health"
	"github.com/ecoplaster/storefront/internal/metrics"
	service "github.com/ecoplaster/storefront/internal/services"
	"github.com/ecoplaster/storefront/internal/session"
	"github.com/ecoplaster/storefront/internal/telemetry"
	"github.com/ecoplaster/storefront/pkg/graphql"
	"github.com/ecoplaster/storefront/pkg/razorpay"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const sweepInterval = time.Minute

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel)
	if err != nil {
		slog.Error("❌ Error initializing tracing", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracing(flushCtx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Redis setup
	redisClient, err := cache.NewRedisClient(&cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Redis connection closed")
		}
	}()

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	carts := cart.NewRegistry(redisCache, cfg.Checkout.SessionIdleTTL)
	go carts.Run(ctx, sweepInterval)

	api := backend.NewGraphQLBackend(graphql.NewClient(cfg.StorefrontAPI.Endpoint, cfg.StorefrontAPI.Timeout))
	bridge := gateway.NewBridge(api, razorpay.NewHostedCheckout(), cfg.Razorpay, cfg.Checkout)

	drafts := session.NewDraftStore(redisCache, cfg.Checkout.DraftTTL)
	lastOrders := session.NewLastOrderStore(redisCache)

	cartService := service.NewCartService(carts)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(api, carts, drafts, cfg.Checkout)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	confirmationService := service.NewConfirmationService(api, bridge, carts, lastOrders, cfg.Checkout)
	paymentService := service.NewPaymentService(bridge, confirmationService, carts, service.PaymentOptions{
		AttemptTimeout: cfg.Razorpay.AttemptTimeout,
	})
	paymentHandler := handlers.NewPaymentHandler(paymentService, confirmationService)
	orderService := service.NewOrderService(api, lastOrders)
	orderHandler := handlers.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))
	sessionMiddleware := middleware.NewSession(cfg.Checkout.SessionCookie, !cfg.Checkout.InsecureCookie)
	promotionLimit := middleware.RateLimit(cache.NewRateLimiter(redisClient, &cfg.RateConfig), "promotion")

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{StorefrontAPI: api})
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("PUT /api/v1/cart/shipping", cartHandler.UpdateShipping())
	routerMux.HandleFunc("POST /api/v1/checkout/promotions", promotionLimit(checkoutHandler.ApplyPromotion()))
	routerMux.HandleFunc("DELETE /api/v1/checkout/promotions", checkoutHandler.RemovePromotion())
	routerMux.HandleFunc("POST /api/v1/checkout/orders", authMiddleware.OptionalAuthenticate(checkoutHandler.PlaceOrder()))
	routerMux.HandleFunc("GET /api/v1/checkout/draft", authMiddleware.Authenticate(checkoutHandler.ResumeDraft()))
	routerMux.HandleFunc("GET /api/v1/payments/intents/{id}", authMiddleware.Authenticate(paymentHandler.GetPaymentPage()))
	routerMux.HandleFunc("POST /api/v1/payments/intents/{id}/attempts", authMiddleware.Authenticate(paymentHandler.BeginPayment()))
	routerMux.HandleFunc("POST /api/v1/payments/intents/{id}/cod", authMiddleware.Authenticate(paymentHandler.ConfirmCashOnDelivery()))
	routerMux.HandleFunc("POST /api/v1/payments/attempts/{orderId}/events", authMiddleware.Authenticate(paymentHandler.HandlePaymentEvent()))
	routerMux.HandleFunc("POST /api/v1/payments/retry", authMiddleware.Authenticate(paymentHandler.Retry()))
	routerMux.HandleFunc("GET /api/v1/payments/status", authMiddleware.Authenticate(paymentHandler.Status()))
	routerMux.HandleFunc("GET /api/v1/orders/last", authMiddleware.Authenticate(orderHandler.LastOrder()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining, outermost last
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = sessionMiddleware.Handler(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")
	stop()

	// Graceful shutdown; pending payment callbacks may hold a request open while settling.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
