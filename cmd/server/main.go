package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/application/services"
	"github.com/DanielPopoola/dinepay/internal/config"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/infrastructure/cache"
	"github.com/DanielPopoola/dinepay/internal/infrastructure/gateway"
	"github.com/DanielPopoola/dinepay/internal/infrastructure/notify"
	"github.com/DanielPopoola/dinepay/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/dinepay/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/dinepay/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger(cfg.Primary.Env)
	slog.SetDefault(logger)

	logger.Info("starting dinepay",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := postgres.NewStore(db)

	rdb, err := cache.Connect(ctx, cfg.Redis, logger)
	if err != nil {
		// Cache and lock are optional; the database stays authoritative.
		logger.Warn("redis unavailable, continuing without cache", "error", err)
	}

	var settingsCache application.SettingsCache
	var shiftLocker application.ShiftLocker
	if rdb != nil {
		defer rdb.Close()
		settingsCache = cache.NewSettingsCache(rdb, cfg.Payment.SettingsTTL)
		shiftLocker = cache.NewShiftLocker(rdb, cfg.Redis.LockTTL)
	}

	var notifier application.Notifier
	var asyncNotifier *notify.AsyncNotifier
	if cfg.RabbitMQ.URL != "" {
		mq, err := notify.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Warn("rabbitmq unavailable, notifications disabled", "error", err)
		} else {
			defer mq.Close()
			asyncNotifier = notify.NewAsyncNotifier(notify.NewAMQPNotifier(mq, cfg.RabbitMQ.Exchange), 5*time.Second, logger)
			notifier = asyncNotifier
		}
	}

	gatewayClient := gateway.NewClient(cfg.Gateway)

	publicURL := strings.TrimRight(cfg.Server.PublicURL, "/")
	checkoutService := services.NewCheckoutService(store, gatewayClient, services.CheckoutConfig{
		SessionTTL:             cfg.Payment.SessionTTL,
		OrderSuccessURL:        publicURL + "/payments/callback/success",
		OrderErrorURL:          publicURL + "/payments/callback/error",
		SubscriptionSuccessURL: publicURL + "/subscriptions/callback/success",
		SubscriptionErrorURL:   publicURL + "/subscriptions/callback/error",
		PlatformTerminal: domain.Terminal{
			MerchantID: cfg.PlatformTerminal.MerchantID,
			TerminalID: cfg.PlatformTerminal.TerminalID,
			Passphrase: cfg.PlatformTerminal.Passphrase,
		},
	}, logger)

	reconcilerCfg := services.ReconcilerConfig{
		ApprovedCode:  cfg.Gateway.ApprovedCode,
		AmountEpsilon: cfg.Payment.Epsilon(),
	}
	orderReconciler := services.NewOrderReconciler(store, notifier, reconcilerCfg, logger)
	subscriptionReconciler := services.NewSubscriptionReconciler(store, notifier, reconcilerCfg, logger)

	orderService := services.NewOrderService(store, notifier, logger)
	shiftService := services.NewShiftService(store, shiftLocker, logger)
	settingsService := services.NewSettingsService(store, settingsCache, logger)

	apiDocs, err := handlers.LoadAPIDocs(ctx)
	if err != nil {
		logger.Error("invalid API document", "error", err)
		os.Exit(1)
	}

	h := handlers.NewHandlers(
		orderService,
		checkoutService,
		orderReconciler,
		subscriptionReconciler,
		shiftService,
		settingsService,
		apiDocs,
		handlers.Config{
			SuccessURL: cfg.Frontend.SuccessURL,
			FailureURL: cfg.Frontend.FailureURL,
		},
		logger,
	)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.Tenant(logger)(mux)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.RequestTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if asyncNotifier != nil {
		asyncNotifier.Wait()
	}

	logger.Info("server exited")
}
