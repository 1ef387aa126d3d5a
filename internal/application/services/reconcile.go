package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/tenant"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// payable is what a callback can settle: an order or a subscription payment.
type payable interface {
	IsPaid() bool
	Tenant() int64
	MarkPaid(transactionID string, amount decimal.Decimal, at time.Time) error
	MarkPaymentFailed() error
}

// settlementTarget adapts one payable kind to the reconciler.
type settlementTarget interface {
	kind() domain.SessionKind
	notFound() error
	find(ctx context.Context, store application.Store, id int64, forUpdate bool) (payable, error)
	save(ctx context.Context, tx application.Store, p payable) error
	// activate runs inside the settling transaction after save.
	activate(ctx context.Context, tx application.Store, p payable, at time.Time) error
	announce(id int64, p payable) (title, body string, data map[string]string)
}

// CallbackOutcome is what the transport adapters render back.
type CallbackOutcome struct {
	Kind          domain.SessionKind
	TargetID      int64
	PaymentStatus domain.PaymentStatus
	AlreadyPaid   bool
	// Err is the business reason the payment did not settle. Nil on success.
	Err error
}

func (o CallbackOutcome) Success() bool { return o.Err == nil }

type ReconcilerConfig struct {
	ApprovedCode  string
	AmountEpsilon decimal.Decimal
	Correlation   []domain.CorrelationExtractor
}

// Reconciler settles gateway callbacks exactly once. The GET redirect and
// JSON POST adapters both end up here.
type Reconciler struct {
	store    application.Store
	target   settlementTarget
	notifier application.Notifier
	cfg      ReconcilerConfig
	logger   *slog.Logger
	now      func() time.Time
}

func newReconciler(store application.Store, target settlementTarget, notifier application.Notifier, cfg ReconcilerConfig, logger *slog.Logger) *Reconciler {
	if len(cfg.Correlation) == 0 {
		cfg.Correlation = domain.DefaultCorrelation
	}
	return &Reconciler{
		store:    store,
		target:   target,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger.With("settlement", string(target.kind())),
		now:      time.Now,
	}
}

func NewOrderReconciler(store application.Store, notifier application.Notifier, cfg ReconcilerConfig, logger *slog.Logger) *Reconciler {
	return newReconciler(store, orderTarget{}, notifier, cfg, logger)
}

func NewSubscriptionReconciler(store application.Store, notifier application.Notifier, cfg ReconcilerConfig, logger *slog.Logger) *Reconciler {
	return newReconciler(store, subscriptionTarget{}, notifier, cfg, logger)
}

// WithClock replaces the time source.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// HandleSuccess processes an approved-path callback. It never returns an
// error; every failure is reported in the outcome.
func (r *Reconciler) HandleSuccess(ctx context.Context, p domain.CallbackParams) CallbackOutcome {
	ctx = tenant.WithoutScope(ctx)
	ctx, span := startSpan(ctx, "reconcile.success", attribute.String("kind", string(r.target.kind())))
	out := CallbackOutcome{Kind: r.target.kind()}
	defer func() { endSpan(span, out.Err) }()

	log := r.logger.With("transaction_id", p.TransactionID, "session_token", p.Echo3, "result_code", p.ResultCode)

	id, ok := domain.ResolveCorrelation(p, r.cfg.Correlation)
	if ok {
		out.TargetID = id
		log = log.With("target_id", id)
		span.SetAttributes(attribute.Int64("target_id", id))
	}

	if !p.Approved(r.cfg.ApprovedCode) {
		out.Err = fmt.Errorf("%w: result code %q", domain.ErrPaymentNotApproved, p.ResultCode)
		log.Warn("success callback without approval code")
		return out
	}
	if !ok {
		out.Err = r.target.notFound()
		log.Warn("callback carries no usable correlation id",
			"order_ref", p.OrderRef, "echo1", p.Echo1, "echo2", p.Echo2)
		return out
	}

	current, err := r.target.find(ctx, r.store, id, false)
	if err != nil {
		out.Err = err
		if errors.Is(err, r.target.notFound()) {
			log.Warn("callback for unknown target")
		} else {
			log.Error("failed to load callback target", "error", err)
		}
		return out
	}
	if current.IsPaid() {
		out.AlreadyPaid = true
		out.PaymentStatus = domain.PaymentPaid
		log.Info("duplicate success callback ignored")
		return out
	}

	var settled payable
	var failure error
	err = r.store.WithTx(ctx, func(tx application.Store) error {
		locked, err := r.target.find(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if locked.IsPaid() {
			out.AlreadyPaid = true
			return nil
		}

		now := r.now()
		amount, amountErr := p.ParsedAmount()

		session, err := tx.Sessions().FindActionable(ctx, r.target.kind(), id)
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			session = nil
		case err != nil:
			return fmt.Errorf("find actionable session: %w", err)
		}

		if session != nil {
			if session.IsExpired(now) {
				if session.Status == domain.SessionPending {
					if err := session.Expire(); err != nil {
						return err
					}
					if err := tx.Sessions().Update(ctx, session); err != nil {
						return err
					}
				}
				failure = domain.ErrSessionExpired
				return nil
			}
			if amountErr != nil || !domain.AmountsMatch(amount, session.Amount, r.cfg.AmountEpsilon) {
				reason := fmt.Sprintf("callback amount %q does not match session amount %s", p.Amount, session.Amount.StringFixed(2))
				if session.Status == domain.SessionPending {
					if err := session.Fail(reason); err != nil {
						return err
					}
					if err := tx.Sessions().Update(ctx, session); err != nil {
						return err
					}
				}
				failure = fmt.Errorf("%w: %s", domain.ErrSessionAmountMismatch, reason)
				return nil
			}
			if err := session.Complete(p.TransactionID, now); err != nil {
				return err
			}
			if err := tx.Sessions().Update(ctx, session); err != nil {
				return err
			}
		} else if amountErr != nil {
			failure = amountErr
			return nil
		}

		if err := locked.MarkPaid(p.TransactionID, amount, now); err != nil {
			return err
		}
		if err := r.target.save(ctx, tx, locked); err != nil {
			return err
		}
		if err := r.target.activate(ctx, tx, locked, now); err != nil {
			return err
		}
		settled = locked
		return nil
	})

	switch {
	case err != nil:
		out.Err = err
		log.Error("settlement failed", "category", application.CategorizeError(err), "error", err)
		return out
	case out.AlreadyPaid:
		out.PaymentStatus = domain.PaymentPaid
		log.Info("success callback raced a settled payment")
		return out
	case failure != nil:
		out.Err = failure
		log.Warn("payment rejected", "reason", failure)
		return out
	}

	out.PaymentStatus = domain.PaymentPaid
	log.Info("payment settled", "amount", p.Amount)

	title, body, data := r.target.announce(id, settled)
	notify(ctx, r.notifier, r.logger, settled.Tenant(), title, body, data)
	return out
}

// HandleError processes a failure callback. Repeating it is harmless and a
// paid target is never downgraded.
func (r *Reconciler) HandleError(ctx context.Context, p domain.CallbackParams) CallbackOutcome {
	ctx = tenant.WithoutScope(ctx)
	ctx, span := startSpan(ctx, "reconcile.error", attribute.String("kind", string(r.target.kind())))
	out := CallbackOutcome{Kind: r.target.kind(), PaymentStatus: domain.PaymentFailed}
	defer span.End()

	log := r.logger.With("transaction_id", p.TransactionID, "session_token", p.Echo3, "result_code", p.ResultCode)

	id, ok := domain.ResolveCorrelation(p, r.cfg.Correlation)
	if !ok {
		out.Err = r.target.notFound()
		log.Warn("error callback carries no usable correlation id")
		return out
	}
	out.TargetID = id
	log = log.With("target_id", id)

	reason := p.ErrorMessage
	if reason == "" {
		reason = "payment declined"
	}

	err := r.store.WithTx(ctx, func(tx application.Store) error {
		locked, err := r.target.find(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if locked.IsPaid() {
			out.PaymentStatus = domain.PaymentPaid
			return nil
		}
		if err := locked.MarkPaymentFailed(); err != nil {
			return err
		}
		if err := r.target.save(ctx, tx, locked); err != nil {
			return err
		}

		session, err := tx.Sessions().FindActionable(ctx, r.target.kind(), id)
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if session.Status != domain.SessionPending {
			return nil
		}
		if err := session.Fail(reason); err != nil {
			return err
		}
		return tx.Sessions().Update(ctx, session)
	})
	if err != nil {
		out.Err = err
		if errors.Is(err, r.target.notFound()) {
			log.Warn("error callback for unknown target")
		} else {
			log.Error("failed to record payment failure", "error", err)
		}
		return out
	}

	if out.PaymentStatus == domain.PaymentPaid {
		log.Warn("error callback for a paid target ignored")
	} else {
		log.Info("payment failed", "reason", reason)
	}
	out.Err = fmt.Errorf("%w: %s", domain.ErrPaymentNotApproved, reason)
	return out
}

type orderTarget struct{}

func (orderTarget) kind() domain.SessionKind { return domain.SessionOrder }

func (orderTarget) notFound() error { return domain.ErrOrderNotFound }

func (orderTarget) find(ctx context.Context, store application.Store, id int64, forUpdate bool) (payable, error) {
	if forUpdate {
		return store.Orders().FindByIDForUpdate(ctx, id)
	}
	return store.Orders().FindByID(ctx, id)
}

func (orderTarget) save(ctx context.Context, tx application.Store, p payable) error {
	return tx.Orders().Update(ctx, p.(*domain.Order))
}

func (orderTarget) activate(context.Context, application.Store, payable, time.Time) error {
	return nil
}

func (orderTarget) announce(id int64, p payable) (string, string, map[string]string) {
	order := p.(*domain.Order)
	return "Payment received",
		fmt.Sprintf("Order #%d paid %s", id, order.TotalAmount.StringFixed(2)),
		map[string]string{"type": "order_paid", "order_id": fmt.Sprint(id)}
}

type subscriptionTarget struct{}

func (subscriptionTarget) kind() domain.SessionKind { return domain.SessionSubscription }

func (subscriptionTarget) notFound() error { return domain.ErrSubscriptionPaymentNotFound }

func (subscriptionTarget) find(ctx context.Context, store application.Store, id int64, forUpdate bool) (payable, error) {
	if forUpdate {
		return store.Subscriptions().FindPaymentByIDForUpdate(ctx, id)
	}
	return store.Subscriptions().FindPaymentByID(ctx, id)
}

func (subscriptionTarget) save(ctx context.Context, tx application.Store, p payable) error {
	return tx.Subscriptions().UpdatePayment(ctx, p.(*domain.SubscriptionPayment))
}

func (subscriptionTarget) activate(ctx context.Context, tx application.Store, p payable, at time.Time) error {
	payment := p.(*domain.SubscriptionPayment)
	current, err := tx.Subscriptions().FindSubscription(ctx, payment.RestaurantID)
	if err != nil && !errors.Is(err, domain.ErrSubscriptionNotFound) {
		return err
	}
	return tx.Subscriptions().SaveSubscription(ctx, domain.Activate(current, payment, at))
}

func (subscriptionTarget) announce(id int64, p payable) (string, string, map[string]string) {
	payment := p.(*domain.SubscriptionPayment)
	return "Subscription active",
		fmt.Sprintf("Plan %s activated for %d months", payment.PlanCode, payment.Months),
		map[string]string{"type": "subscription_paid", "subscription_payment_id": fmt.Sprint(id)}
}
