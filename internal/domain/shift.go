package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementPayment MovementType = "payment"
	MovementCashIn  MovementType = "cash_in"
	MovementCashOut MovementType = "cash_out"
	MovementRefund  MovementType = "refund"
)

// MovementMethod is the tender of a movement. Only cash touches the drawer.
type MovementMethod string

const (
	TenderCash   MovementMethod = "cash"
	TenderCredit MovementMethod = "credit"
)

var movementTypes = []MovementType{MovementPayment, MovementCashIn, MovementCashOut, MovementRefund}

// CashRegisterShift is one drawer session. At most one per restaurant has a
// nil ClosedAt.
type CashRegisterShift struct {
	ID             int64
	TenantID       int64
	RestaurantID   int64
	CashierID      int64
	OpenedAt       time.Time
	OpeningBalance decimal.Decimal

	ClosedAt        *time.Time
	ClosingBalance  *decimal.Decimal
	ExpectedBalance *decimal.Decimal
	Notes           string
}

func NewShift(tenantID, restaurantID, cashierID int64, opening decimal.Decimal, at time.Time) (*CashRegisterShift, error) {
	if restaurantID == 0 {
		return nil, NewMissingRequiredFieldError("restaurant_id")
	}
	if opening.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", ErrInvalidAmount)
	}
	return &CashRegisterShift{
		TenantID:       tenantID,
		RestaurantID:   restaurantID,
		CashierID:      cashierID,
		OpenedAt:       at,
		OpeningBalance: Round2(opening),
	}, nil
}

func (s *CashRegisterShift) IsOpen() bool {
	return s.ClosedAt == nil
}

func (s *CashRegisterShift) Close(closing, expected decimal.Decimal, notes string, at time.Time) error {
	if !s.IsOpen() {
		return ErrShiftClosed
	}
	if closing.IsNegative() {
		return fmt.Errorf("%w: closing balance cannot be negative", ErrInvalidAmount)
	}
	closing = Round2(closing)
	s.ClosingBalance = &closing
	s.ExpectedBalance = &expected
	s.Notes = notes
	s.ClosedAt = &at
	return nil
}

// CashMovement is an append-only drawer ledger entry.
type CashMovement struct {
	ID          int64
	ShiftID     int64
	OrderID     *int64
	Type        MovementType
	Method      MovementMethod
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

func NewCashMovement(
	shiftID int64,
	orderID *int64,
	kind MovementType,
	method MovementMethod,
	amount decimal.Decimal,
	description string,
	at time.Time,
) (*CashMovement, error) {
	switch kind {
	case MovementPayment, MovementCashIn, MovementCashOut, MovementRefund:
	default:
		return nil, fmt.Errorf("unknown movement type %q", kind)
	}
	switch method {
	case TenderCash, TenderCredit:
	default:
		return nil, fmt.Errorf("unknown movement method %q", method)
	}
	if (kind == MovementCashIn || kind == MovementCashOut) && method != TenderCash {
		return nil, errors.New("cash in and cash out must use the cash method")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: movement amount must be positive", ErrInvalidAmount)
	}
	return &CashMovement{
		ShiftID:     shiftID,
		OrderID:     orderID,
		Type:        kind,
		Method:      method,
		Amount:      Round2(amount),
		Description: description,
		CreatedAt:   at,
	}, nil
}

// TenderFor maps an order payment method onto the drawer tender.
func TenderFor(method PaymentMethod) MovementMethod {
	if method == MethodCash {
		return TenderCash
	}
	return TenderCredit
}

// ShiftOrder is the slice of an order the Z-report cross-check needs.
type ShiftOrder struct {
	ID            int64
	PaymentMethod PaymentMethod
	Status        OrderStatus
	TotalAmount   decimal.Decimal
	CreatedAt     time.Time
}

type MovementSubtotal struct {
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total"`
	CashTotal decimal.Decimal `json:"cash_total"`
}

// ZReport summarises one shift. ClosingBalance and Variance are nil while
// the shift is open.
type ZReport struct {
	ShiftID         int64                             `json:"shift_id"`
	RestaurantID    int64                             `json:"restaurant_id"`
	CashierID       int64                             `json:"cashier_id"`
	OpenedAt        time.Time                         `json:"opened_at"`
	ClosedAt        *time.Time                        `json:"closed_at,omitempty"`
	OpeningBalance  decimal.Decimal                   `json:"opening_balance"`
	ExpectedBalance decimal.Decimal                   `json:"expected_balance"`
	ClosingBalance  *decimal.Decimal                  `json:"closing_balance,omitempty"`
	Variance        *decimal.Decimal                  `json:"variance,omitempty"`
	Subtotals       map[MovementType]MovementSubtotal `json:"subtotals"`
	MovementCount   int                               `json:"movement_count"`
	// UntrackedCashOrders lists cash orders placed during the shift with no
	// payment movement. Advisory only.
	UntrackedCashOrders []int64 `json:"untracked_cash_orders"`
	Notes               string  `json:"notes,omitempty"`
}

// ExpectedBalance is opening + cash payments + cash in - cash out - cash refunds.
func ExpectedBalance(opening decimal.Decimal, movements []CashMovement) decimal.Decimal {
	expected := opening
	for _, m := range movements {
		if m.Method != TenderCash {
			continue
		}
		switch m.Type {
		case MovementPayment, MovementCashIn:
			expected = expected.Add(m.Amount)
		case MovementCashOut, MovementRefund:
			expected = expected.Sub(m.Amount)
		}
	}
	return Round2(expected)
}

// BuildZReport assembles the report for a shift from its movements and the
// orders placed within its window.
func BuildZReport(shift *CashRegisterShift, movements []CashMovement, orders []ShiftOrder) ZReport {
	report := ZReport{
		ShiftID:             shift.ID,
		RestaurantID:        shift.RestaurantID,
		CashierID:           shift.CashierID,
		OpenedAt:            shift.OpenedAt,
		ClosedAt:            shift.ClosedAt,
		OpeningBalance:      shift.OpeningBalance,
		ExpectedBalance:     ExpectedBalance(shift.OpeningBalance, movements),
		ClosingBalance:      shift.ClosingBalance,
		Subtotals:           make(map[MovementType]MovementSubtotal, len(movementTypes)),
		MovementCount:       len(movements),
		UntrackedCashOrders: []int64{},
		Notes:               shift.Notes,
	}
	if shift.ExpectedBalance != nil {
		report.ExpectedBalance = *shift.ExpectedBalance
	}
	for _, t := range movementTypes {
		report.Subtotals[t] = MovementSubtotal{Total: decimal.Zero, CashTotal: decimal.Zero}
	}

	tracked := make(map[int64]struct{})
	for _, m := range movements {
		st := report.Subtotals[m.Type]
		st.Count++
		st.Total = st.Total.Add(m.Amount)
		if m.Method == TenderCash {
			st.CashTotal = st.CashTotal.Add(m.Amount)
		}
		report.Subtotals[m.Type] = st
		if m.Type == MovementPayment && m.OrderID != nil {
			tracked[*m.OrderID] = struct{}{}
		}
	}

	for _, o := range orders {
		if o.PaymentMethod != MethodCash || o.Status == OrderCancelled {
			continue
		}
		if _, ok := tracked[o.ID]; !ok {
			report.UntrackedCashOrders = append(report.UntrackedCashOrders, o.ID)
		}
	}

	if shift.ClosingBalance != nil {
		v := shift.ClosingBalance.Sub(report.ExpectedBalance)
		report.Variance = &v
	}
	return report
}
