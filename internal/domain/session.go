package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// SessionKind tells which settlement target a session pays for.
type SessionKind string

const (
	SessionOrder        SessionKind = "order"
	SessionSubscription SessionKind = "subscription"
)

type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
	SessionExpired   SessionStatus = "expired"
)

// PaymentSession is one attempt at paying a target through the gateway.
// Sessions are never deleted.
type PaymentSession struct {
	Token        string
	Kind         SessionKind
	TargetID     int64
	TenantID     int64
	RestaurantID int64
	Amount       decimal.Decimal
	Status       SessionStatus
	ExpiresAt    time.Time

	TransactionID *string
	ErrorMessage  *string
	CompletedAt   *time.Time
	CreatedAt     time.Time
}

func NewPaymentSession(
	token string,
	kind SessionKind,
	targetID, tenantID, restaurantID int64,
	amount decimal.Decimal,
	now time.Time,
	ttl time.Duration,
) (*PaymentSession, error) {
	if token == "" {
		return nil, errors.New("session token is required")
	}
	if targetID <= 0 {
		return nil, NewMissingRequiredFieldError("target_id")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return &PaymentSession{
		Token:        token,
		Kind:         kind,
		TargetID:     targetID,
		TenantID:     tenantID,
		RestaurantID: restaurantID,
		Amount:       amount,
		Status:       SessionPending,
		ExpiresAt:    now.Add(ttl),
		CreatedAt:    now,
	}, nil
}

// IsExpired is true once now passes ExpiresAt, whatever the stored status.
func (s *PaymentSession) IsExpired(now time.Time) bool {
	return s.Status == SessionExpired || now.After(s.ExpiresAt)
}

// Complete settles the session. A failed session may still complete when
// the gateway later approves it; an expired one may not.
func (s *PaymentSession) Complete(transactionID string, at time.Time) error {
	if s.Status != SessionPending && s.Status != SessionFailed {
		return NewInvalidTransitionError(string(s.Status), string(SessionCompleted))
	}
	s.Status = SessionCompleted
	s.TransactionID = &transactionID
	s.CompletedAt = &at
	return nil
}

func (s *PaymentSession) Fail(reason string) error {
	if s.Status != SessionPending {
		return NewInvalidTransitionError(string(s.Status), string(SessionFailed))
	}
	s.Status = SessionFailed
	s.ErrorMessage = &reason
	return nil
}

func (s *PaymentSession) Expire() error {
	if s.Status != SessionPending {
		return NewInvalidTransitionError(string(s.Status), string(SessionExpired))
	}
	s.Status = SessionExpired
	return nil
}
