package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionPlan struct {
	Code      string
	Name      string
	Months    int
	Price     decimal.Decimal
	AICredits int
}

// SubscriptionPayment is a platform-billing charge to a restaurant. It
// settles through the same session and callback discipline as orders.
type SubscriptionPayment struct {
	ID            int64
	TenantID      int64
	RestaurantID  int64
	PlanCode      string
	Months        int
	AICredits     int
	Amount        decimal.Decimal
	PaymentStatus PaymentStatus
	TransactionID *string
	PaidAmount    *decimal.Decimal
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewSubscriptionPayment(tenantID, restaurantID int64, plan SubscriptionPlan) (*SubscriptionPayment, error) {
	if restaurantID == 0 {
		return nil, NewMissingRequiredFieldError("restaurant_id")
	}
	if !plan.Price.IsPositive() || plan.Months < 1 {
		return nil, ErrInvalidAmount
	}
	now := time.Now()
	return &SubscriptionPayment{
		TenantID:      tenantID,
		RestaurantID:  restaurantID,
		PlanCode:      plan.Code,
		Months:        plan.Months,
		AICredits:     plan.AICredits,
		Amount:        Round2(plan.Price),
		PaymentStatus: PaymentUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (p *SubscriptionPayment) IsPaid() bool { return p.PaymentStatus == PaymentPaid }

func (p *SubscriptionPayment) Tenant() int64 { return p.TenantID }

func (p *SubscriptionPayment) MarkPaymentPending() error {
	return p.transition(PaymentPending)
}

func (p *SubscriptionPayment) MarkPaymentFailed() error {
	return p.transition(PaymentFailed)
}

func (p *SubscriptionPayment) MarkPaid(transactionID string, amount decimal.Decimal, at time.Time) error {
	if err := p.transition(PaymentPaid); err != nil {
		return err
	}
	p.TransactionID = &transactionID
	p.PaidAmount = &amount
	p.PaidAt = &at
	return nil
}

func (p *SubscriptionPayment) transition(target PaymentStatus) error {
	if err := canTransitionPayment(p.PaymentStatus, target); err != nil {
		return err
	}
	p.PaymentStatus = target
	p.UpdatedAt = time.Now()
	return nil
}

// Subscription is the restaurant's active platform plan.
type Subscription struct {
	TenantID     int64
	RestaurantID int64
	PlanCode     string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	AICredits    int
	UpdatedAt    time.Time
}

// Activate applies a paid subscription payment. The period is extended from
// the later of now and the current end, so early renewals keep their days.
func Activate(current *Subscription, payment *SubscriptionPayment, now time.Time) *Subscription {
	if current == nil {
		current = &Subscription{
			TenantID:     payment.TenantID,
			RestaurantID: payment.RestaurantID,
			PeriodStart:  now,
			PeriodEnd:    now,
		}
	}
	start := current.PeriodEnd
	if now.After(start) {
		start = now
		current.PeriodStart = now
	}
	current.PlanCode = payment.PlanCode
	current.PeriodEnd = start.AddDate(0, payment.Months, 0)
	current.AICredits += payment.AICredits
	current.UpdatedAt = now
	return current
}

func (s *Subscription) IsActive(now time.Time) bool {
	return now.Before(s.PeriodEnd)
}
