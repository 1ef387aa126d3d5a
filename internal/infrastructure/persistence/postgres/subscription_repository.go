package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const subscriptionPaymentColumns = `
	id, tenant_id, restaurant_id, plan_code, months, ai_credits, amount, payment_status,
	transaction_id, paid_amount, paid_at, created_at, updated_at`

type subscriptionRepository struct {
	q Executor
}

// FindPlan reads the platform-wide plan catalog. Plans carry no tenant.
func (r *subscriptionRepository) FindPlan(ctx context.Context, code string) (*domain.SubscriptionPlan, error) {
	var (
		p     domain.SubscriptionPlan
		price pgtype.Numeric
	)
	err := r.q.QueryRow(ctx,
		`SELECT code, name, months, price, ai_credits FROM subscription_plans WHERE code = $1`, code,
	).Scan(&p.Code, &p.Name, &p.Months, &price, &p.AICredits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to scan plan: %w", err)
	}
	p.Price = toDecimal(price)
	return &p, nil
}

func (r *subscriptionRepository) CreatePayment(ctx context.Context, p *domain.SubscriptionPayment) error {
	query := `
		INSERT INTO subscription_payments (
			tenant_id, restaurant_id, plan_code, months, ai_credits, amount, payment_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.q.QueryRow(ctx, query,
		p.TenantID,
		p.RestaurantID,
		p.PlanCode,
		p.Months,
		p.AICredits,
		toNumeric(p.Amount),
		string(p.PaymentStatus),
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create subscription payment: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) FindPaymentByID(ctx context.Context, id int64) (*domain.SubscriptionPayment, error) {
	return r.findPayment(ctx, id, "")
}

func (r *subscriptionRepository) FindPaymentByIDForUpdate(ctx context.Context, id int64) (*domain.SubscriptionPayment, error) {
	return r.findPayment(ctx, id, "FOR UPDATE")
}

func (r *subscriptionRepository) findPayment(ctx context.Context, id int64, lock string) (*domain.SubscriptionPayment, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + subscriptionPaymentColumns + `
		FROM subscription_payments
		WHERE id = $1 AND ($2::bigint IS NULL OR tenant_id = $2)
		` + lock

	var m subscriptionPaymentModel
	err = r.q.QueryRow(ctx, query, id, tenantID).Scan(
		&m.ID, &m.TenantID, &m.RestaurantID, &m.PlanCode, &m.Months, &m.AICredits, &m.Amount, &m.PaymentStatus,
		&m.TransactionID, &m.PaidAmount, &m.PaidAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubscriptionPaymentNotFound
		}
		return nil, fmt.Errorf("failed to scan subscription payment: %w", err)
	}
	return toDomainSubscriptionPayment(m), nil
}

func (r *subscriptionRepository) UpdatePayment(ctx context.Context, p *domain.SubscriptionPayment) error {
	query := `
		UPDATE subscription_payments
		SET payment_status = $1, transaction_id = $2, paid_amount = $3, paid_at = $4, updated_at = $5
		WHERE id = $6
	`
	tag, err := r.q.Exec(ctx, query,
		string(p.PaymentStatus),
		p.TransactionID,
		toNullNumeric(p.PaidAmount),
		p.PaidAt,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionPaymentNotFound
	}
	return nil
}

func (r *subscriptionRepository) FindSubscription(ctx context.Context, restaurantID int64) (*domain.Subscription, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}
	var s domain.Subscription
	err = r.q.QueryRow(ctx, `
		SELECT tenant_id, restaurant_id, plan_code, period_start, period_end, ai_credits, updated_at
		FROM subscriptions
		WHERE restaurant_id = $1 AND ($2::bigint IS NULL OR tenant_id = $2)
		FOR UPDATE
	`, restaurantID, tenantID).Scan(
		&s.TenantID, &s.RestaurantID, &s.PlanCode, &s.PeriodStart, &s.PeriodEnd, &s.AICredits, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to scan subscription: %w", err)
	}
	return &s, nil
}

func (r *subscriptionRepository) SaveSubscription(ctx context.Context, s *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (tenant_id, restaurant_id, plan_code, period_start, period_end, ai_credits, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (restaurant_id) DO UPDATE
		SET plan_code = EXCLUDED.plan_code,
		    period_start = EXCLUDED.period_start,
		    period_end = EXCLUDED.period_end,
		    ai_credits = EXCLUDED.ai_credits,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := r.q.Exec(ctx, query,
		s.TenantID,
		s.RestaurantID,
		s.PlanCode,
		s.PeriodStart,
		s.PeriodEnd,
		s.AICredits,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}
