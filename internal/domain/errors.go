package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSelectionInvalid      = errors.New("selection invalid")
	ErrEmptyCart             = errors.New("order must contain at least one line")
	ErrInvalidPaymentMethod  = errors.New("payment method not allowed for this channel")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrMissingRequiredField  = errors.New("missing required field")
	ErrAlreadyPaid           = errors.New("order is already paid")
	ErrPaymentNotApproved    = errors.New("payment not approved by gateway")
	ErrSessionExpired        = errors.New("payment session expired")
	ErrSessionAmountMismatch = errors.New("paid amount does not match payment session")
	ErrGatewaySigningFailed  = errors.New("gateway signing failed")
	ErrShiftAlreadyOpen      = errors.New("a shift is already open for this restaurant")
	ErrShiftNotOpen          = errors.New("no open shift for this restaurant")
	ErrShiftClosed           = errors.New("shift is already closed")

	ErrCardPaymentsUnavailable = errors.New("card payments are not available for this restaurant")

	ErrOrderNotFound               = errors.New("order not found")
	ErrSessionNotFound             = errors.New("payment session not found")
	ErrShiftNotFound               = errors.New("shift not found")
	ErrPlanNotFound                = errors.New("subscription plan not found")
	ErrSubscriptionPaymentNotFound = errors.New("subscription payment not found")
	ErrSubscriptionNotFound        = errors.New("subscription not found")
	ErrSettingsNotFound            = errors.New("payment settings not found")
)

// Selection failure reasons.
const (
	ReasonQuantity         = "quantity"
	ReasonItemUnavailable  = "item_unavailable"
	ReasonVariant          = "variant"
	ReasonAddonMin         = "addon_min"
	ReasonAddonMax         = "addon_max"
	ReasonAddonSingle      = "addon_single"
	ReasonAddonUnavailable = "addon_unavailable"
)

// SelectionError describes why a cart line could not be priced.
// It matches ErrSelectionInvalid under errors.Is.
type SelectionError struct {
	Reason string
	Group  string
	Limit  int
	// Line is the zero-based cart position, -1 when not attached to a cart.
	Line int
}

func NewSelectionError(reason string) *SelectionError {
	return &SelectionError{Reason: reason, Line: -1}
}

func newGroupSelectionError(reason, group string, limit int) *SelectionError {
	return &SelectionError{Reason: reason, Group: group, Limit: limit, Line: -1}
}

func (e *SelectionError) Error() string {
	msg := "selection invalid: " + e.Reason
	if e.Group != "" {
		msg += fmt.Sprintf(" (group %q", e.Group)
		if e.Limit > 0 {
			msg += fmt.Sprintf(", limit %d", e.Limit)
		}
		msg += ")"
	}
	if e.Line >= 0 {
		msg += fmt.Sprintf(" on line %d", e.Line)
	}
	return msg
}

func (e *SelectionError) Is(target error) bool {
	return target == ErrSelectionInvalid
}

// AtLine returns a copy bound to a cart position.
func (e *SelectionError) AtLine(line int) *SelectionError {
	cp := *e
	cp.Line = line
	return &cp
}

func NewMissingRequiredFieldError(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingRequiredField, field)
}

func NewInvalidTransitionError(from, to string) error {
	return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, from, to)
}
