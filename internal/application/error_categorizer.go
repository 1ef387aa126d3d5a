package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/tenant"
)

// ErrorCategory describes the nature of an error for logging. Nothing in
// this service retries on its own.
type ErrorCategory string

const (
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryConflict       ErrorCategory = "CONFLICT"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, domain.ErrSelectionInvalid),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrMissingRequiredField),
		errors.Is(err, tenant.ErrMissingTenant),
		isNotFound(err):
		return CategoryClientError

	case errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrSessionAmountMismatch),
		errors.Is(err, domain.ErrPaymentNotApproved),
		errors.Is(err, domain.ErrCardPaymentsUnavailable),
		errors.Is(err, domain.ErrAlreadyPaid):
		return CategoryBusinessRule

	case errors.Is(err, domain.ErrShiftAlreadyOpen),
		errors.Is(err, domain.ErrShiftNotOpen),
		errors.Is(err, domain.ErrShiftClosed),
		errors.Is(err, domain.ErrInvalidTransition):
		return CategoryConflict

	case errors.Is(err, domain.ErrGatewaySigningFailed),
		errors.Is(err, context.DeadlineExceeded):
		return CategoryInfrastructure
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput, ErrCodeUnauthorized:
			return CategoryClientError
		case ErrCodeInvalidState:
			return CategoryConflict
		}
	}

	return CategoryInfrastructure
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrOrderNotFound) ||
		errors.Is(err, domain.ErrSessionNotFound) ||
		errors.Is(err, domain.ErrShiftNotFound) ||
		errors.Is(err, domain.ErrPlanNotFound) ||
		errors.Is(err, domain.ErrSubscriptionPaymentNotFound) ||
		errors.Is(err, domain.ErrSubscriptionNotFound) ||
		errors.Is(err, domain.ErrSettingsNotFound)
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case errors.Is(err, domain.ErrSelectionInvalid),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrSessionAmountMismatch),
		errors.Is(err, domain.ErrPaymentNotApproved),
		errors.Is(err, domain.ErrCardPaymentsUnavailable):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrMissingRequiredField):
		return http.StatusBadRequest

	case errors.Is(err, tenant.ErrMissingTenant):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrShiftAlreadyOpen),
		errors.Is(err, domain.ErrShiftNotOpen),
		errors.Is(err, domain.ErrShiftClosed),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAlreadyPaid):
		return http.StatusConflict

	case isNotFound(err):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrGatewaySigningFailed):
		return http.StatusBadGateway

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	return http.StatusInternalServerError
}

var errorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrSelectionInvalid, "SELECTION_INVALID"},
	{domain.ErrEmptyCart, "EMPTY_CART"},
	{domain.ErrInvalidPaymentMethod, "INVALID_PAYMENT_METHOD"},
	{domain.ErrInvalidTransition, "INVALID_TRANSITION"},
	{domain.ErrInvalidAmount, "INVALID_AMOUNT"},
	{domain.ErrMissingRequiredField, "MISSING_REQUIRED_FIELD"},
	{domain.ErrAlreadyPaid, "ALREADY_PAID"},
	{domain.ErrPaymentNotApproved, "PAYMENT_NOT_APPROVED"},
	{domain.ErrSessionExpired, "SESSION_EXPIRED"},
	{domain.ErrSessionAmountMismatch, "SESSION_AMOUNT_MISMATCH"},
	{domain.ErrGatewaySigningFailed, "GATEWAY_SIGNING_FAILED"},
	{domain.ErrShiftAlreadyOpen, "SHIFT_ALREADY_OPEN"},
	{domain.ErrShiftNotOpen, "SHIFT_NOT_OPEN"},
	{domain.ErrShiftClosed, "SHIFT_CLOSED"},
	{domain.ErrCardPaymentsUnavailable, "CARD_PAYMENTS_UNAVAILABLE"},
	{domain.ErrOrderNotFound, "ORDER_NOT_FOUND"},
	{domain.ErrSessionNotFound, "SESSION_NOT_FOUND"},
	{domain.ErrShiftNotFound, "SHIFT_NOT_FOUND"},
	{domain.ErrPlanNotFound, "PLAN_NOT_FOUND"},
	{domain.ErrSubscriptionPaymentNotFound, "SUBSCRIPTION_PAYMENT_NOT_FOUND"},
	{domain.ErrSubscriptionNotFound, "SUBSCRIPTION_NOT_FOUND"},
	{domain.ErrSettingsNotFound, "SETTINGS_NOT_FOUND"},
	{tenant.ErrMissingTenant, ErrCodeUnauthorized},
	{context.DeadlineExceeded, ErrCodeTimeout},
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ErrCodeInternal
}
