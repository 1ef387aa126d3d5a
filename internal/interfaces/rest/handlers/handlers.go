// Package handlers exposes the order, checkout, callback, shift and
// settings operations over plain net/http.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/dinepay/internal/application/services"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/go-playground/validator"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, cmd services.PlaceOrderCommand) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	AdvanceStatus(ctx context.Context, id int64, target domain.OrderStatus) (*domain.Order, error)
	Cancel(ctx context.Context, id int64) (*domain.Order, error)
}

type CheckoutService interface {
	StartOrderPayment(ctx context.Context, orderID int64) (*services.CheckoutResult, error)
	StartSubscriptionPayment(ctx context.Context, planCode string) (*services.CheckoutResult, error)
}

type CallbackReconciler interface {
	HandleSuccess(ctx context.Context, p domain.CallbackParams) services.CallbackOutcome
	HandleError(ctx context.Context, p domain.CallbackParams) services.CallbackOutcome
}

type ShiftService interface {
	OpenShift(ctx context.Context, cmd services.OpenShiftCommand) (*domain.CashRegisterShift, error)
	RecordMovement(ctx context.Context, cmd services.RecordMovementCommand) (*domain.CashMovement, error)
	CloseShift(ctx context.Context, cmd services.CloseShiftCommand) (*domain.ZReport, error)
	GetReport(ctx context.Context, ref string) (*domain.ZReport, error)
}

type SettingsService interface {
	GetPaymentSettings(ctx context.Context) (*domain.PaymentSettingsView, error)
}

// Config holds the browser landing pages for the GET callbacks.
type Config struct {
	SuccessURL string
	FailureURL string
}

type Handlers struct {
	orders        OrderService
	checkout      CheckoutService
	orderCallback CallbackReconciler
	subCallback   CallbackReconciler
	shifts        ShiftService
	settings      SettingsService
	docs          *APIDocs
	cfg           Config
	validate      *validator.Validate
	logger        *slog.Logger
}

func NewHandlers(
	orders OrderService,
	checkout CheckoutService,
	orderCallback CallbackReconciler,
	subCallback CallbackReconciler,
	shifts ShiftService,
	settings SettingsService,
	docs *APIDocs,
	cfg Config,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		orders:        orders,
		checkout:      checkout,
		orderCallback: orderCallback,
		subCallback:   subCallback,
		shifts:        shifts,
		settings:      settings,
		docs:          docs,
		cfg:           cfg,
		validate:      validator.New(),
		logger:        logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /orders", h.HandlePlaceOrder)
	mux.HandleFunc("GET /orders/{id}", h.HandleGetOrder)
	mux.HandleFunc("POST /orders/{id}/status", h.HandleAdvanceStatus)
	mux.HandleFunc("POST /orders/{id}/cancel", h.HandleCancelOrder)
	mux.HandleFunc("POST /orders/{id}/checkout", h.HandleOrderCheckout)
	mux.HandleFunc("POST /subscriptions/checkout", h.HandleSubscriptionCheckout)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		mux.HandleFunc(method+" /payments/callback/success", h.callback(h.orderCallback, true))
		mux.HandleFunc(method+" /payments/callback/error", h.callback(h.orderCallback, false))
		mux.HandleFunc(method+" /subscriptions/callback/success", h.callback(h.subCallback, true))
		mux.HandleFunc(method+" /subscriptions/callback/error", h.callback(h.subCallback, false))
	}

	mux.HandleFunc("POST /shifts", h.HandleOpenShift)
	mux.HandleFunc("POST /shifts/current/movements", h.HandleRecordMovement)
	mux.HandleFunc("POST /shifts/current/close", h.HandleCloseShift)
	mux.HandleFunc("GET /shifts/{id}/report", h.HandleGetReport)
	mux.HandleFunc("GET /shifts/{id}/report.xlsx", h.HandleExportReport)

	mux.HandleFunc("GET /payment-settings", h.HandleGetPaymentSettings)

	if h.docs != nil {
		mux.HandleFunc("GET /docs/openapi.json", h.docs.HandleOpenAPI)
		mux.HandleFunc("GET /docs/swagger.json", h.docs.HandleSwagger)
	}
}
