package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/tenant"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// CheckoutConfig holds the knobs and callback endpoints for starting a
// hosted card payment.
type CheckoutConfig struct {
	SessionTTL time.Duration
	// Callback URLs handed to the gateway.
	OrderSuccessURL        string
	OrderErrorURL          string
	SubscriptionSuccessURL string
	SubscriptionErrorURL   string
	// PlatformTerminal bills subscriptions.
	PlatformTerminal domain.Terminal
}

type CheckoutService struct {
	store   application.Store
	gateway application.Gateway
	cfg     CheckoutConfig
	logger  *slog.Logger
	now     func() time.Time
}

func NewCheckoutService(store application.Store, gateway application.Gateway, cfg CheckoutConfig, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		store:   store,
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock replaces the time source.
func (s *CheckoutService) WithClock(now func() time.Time) *CheckoutService {
	s.now = now
	return s
}

// StartOrderPayment signs a payment for the order's total and opens a new
// session. Signing happens before any transaction is opened.
func (s *CheckoutService) StartOrderPayment(ctx context.Context, orderID int64) (_ *CheckoutResult, err error) {
	ctx, span := startSpan(ctx, "checkout.order", attribute.Int64("order_id", orderID))
	defer func() { endSpan(span, err) }()

	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid() {
		return nil, domain.ErrAlreadyPaid
	}
	if order.Status == domain.OrderCancelled {
		return nil, domain.NewInvalidTransitionError(string(order.Status), string(domain.PaymentPending))
	}
	if order.PaymentMethod != domain.MethodOnline {
		return nil, fmt.Errorf("%w: order is payable by %s", domain.ErrInvalidPaymentMethod, order.PaymentMethod)
	}

	settings, err := s.store.Settings().FindByRestaurant(ctx, order.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !settings.CardUsable() {
		return nil, domain.ErrCardPaymentsUnavailable
	}

	token := uuid.NewString()
	signed, err := s.gateway.Sign(ctx, application.PaymentRequest{
		Terminal:     settings.Terminal,
		Amount:       order.TotalAmount,
		Reference:    order.ID,
		SessionToken: token,
		Description:  fmt.Sprintf("Order #%d", order.ID),
		SuccessURL:   s.cfg.OrderSuccessURL,
		ErrorURL:     s.cfg.OrderErrorURL,
	})
	if err != nil {
		s.logger.Error("gateway signing failed",
			"order_id", order.ID,
			"category", application.CategorizeError(err),
			"error", err,
		)
		return nil, err
	}

	session, err := domain.NewPaymentSession(token, domain.SessionOrder, order.ID,
		order.TenantID, order.RestaurantID, order.TotalAmount, s.now(), s.cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx application.Store) error {
		locked, err := tx.Orders().FindByIDForUpdate(ctx, order.ID)
		if err != nil {
			return err
		}
		if locked.IsPaid() {
			return domain.ErrAlreadyPaid
		}
		if err := locked.MarkPaymentPending(); err != nil {
			return err
		}
		if err := tx.Orders().Update(ctx, locked); err != nil {
			return err
		}
		return tx.Sessions().Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment session started",
		"order_id", order.ID,
		"session_token", token,
		"amount", session.Amount.StringFixed(2),
	)
	return &CheckoutResult{
		SessionToken: token,
		RedirectURL:  signed.RedirectURL,
		Amount:       session.Amount,
		ExpiresAt:    session.ExpiresAt,
		TargetID:     order.ID,
	}, nil
}

// StartSubscriptionPayment bills a plan to the caller's restaurant on the
// platform terminal.
func (s *CheckoutService) StartSubscriptionPayment(ctx context.Context, planCode string) (_ *CheckoutResult, err error) {
	scope, err := tenant.MustRestaurant(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "checkout.subscription",
		attribute.Int64("restaurant_id", scope.RestaurantID),
		attribute.String("plan_code", planCode),
	)
	defer func() { endSpan(span, err) }()

	if s.cfg.PlatformTerminal.MerchantID == "" {
		return nil, domain.ErrCardPaymentsUnavailable
	}

	plan, err := s.store.Subscriptions().FindPlan(ctx, planCode)
	if err != nil {
		return nil, err
	}
	payment, err := domain.NewSubscriptionPayment(scope.TenantID, scope.RestaurantID, *plan)
	if err != nil {
		return nil, err
	}
	if err := s.store.Subscriptions().CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("create subscription payment: %w", err)
	}

	token := uuid.NewString()
	signed, err := s.gateway.Sign(ctx, application.PaymentRequest{
		Terminal:     s.cfg.PlatformTerminal,
		Amount:       payment.Amount,
		Reference:    payment.ID,
		SessionToken: token,
		Description:  fmt.Sprintf("Subscription %s", plan.Name),
		SuccessURL:   s.cfg.SubscriptionSuccessURL,
		ErrorURL:     s.cfg.SubscriptionErrorURL,
	})
	if err != nil {
		s.logger.Error("gateway signing failed",
			"subscription_payment_id", payment.ID,
			"category", application.CategorizeError(err),
			"error", err,
		)
		return nil, err
	}

	session, err := domain.NewPaymentSession(token, domain.SessionSubscription, payment.ID,
		payment.TenantID, payment.RestaurantID, payment.Amount, s.now(), s.cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx application.Store) error {
		locked, err := tx.Subscriptions().FindPaymentByIDForUpdate(ctx, payment.ID)
		if err != nil {
			return err
		}
		if err := locked.MarkPaymentPending(); err != nil {
			return err
		}
		if err := tx.Subscriptions().UpdatePayment(ctx, locked); err != nil {
			return err
		}
		return tx.Sessions().Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("subscription payment started",
		"subscription_payment_id", payment.ID,
		"plan_code", plan.Code,
		"session_token", token,
	)
	return &CheckoutResult{
		SessionToken: token,
		RedirectURL:  signed.RedirectURL,
		Amount:       session.Amount,
		ExpiresAt:    session.ExpiresAt,
		TargetID:     payment.ID,
	}, nil
}
