package domain_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movement(t *testing.T, kind domain.MovementType, method domain.MovementMethod, amount string, orderID *int64) domain.CashMovement {
	t.Helper()
	m, err := domain.NewCashMovement(1, orderID, kind, method, dec(amount), "", time.Now())
	require.NoError(t, err)
	return *m
}

func TestNewCashMovement(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.MovementType
		method  domain.MovementMethod
		amount  string
		wantErr error
	}{
		{"valid payment", domain.MovementPayment, domain.TenderCredit, "10.00", nil},
		{"zero amount", domain.MovementCashIn, domain.TenderCash, "0", domain.ErrInvalidAmount},
		{"negative amount", domain.MovementRefund, domain.TenderCash, "-5", domain.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewCashMovement(1, nil, tt.kind, tt.method, dec(tt.amount), "", time.Now())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("cash out by card is rejected", func(t *testing.T) {
		_, err := domain.NewCashMovement(1, nil, domain.MovementCashOut, domain.TenderCredit, dec("5"), "", time.Now())
		assert.Error(t, err)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := domain.NewCashMovement(1, nil, "tip", domain.TenderCash, dec("5"), "", time.Now())
		assert.Error(t, err)
	})
}

func TestExpectedBalance(t *testing.T) {
	movements := []domain.CashMovement{
		movement(t, domain.MovementPayment, domain.TenderCash, "150.00", id(1)),
		movement(t, domain.MovementPayment, domain.TenderCredit, "80.00", id(2)),
		movement(t, domain.MovementCashOut, domain.TenderCash, "30.00", nil),
	}

	expected := domain.ExpectedBalance(dec("200.00"), movements)

	assert.True(t, dec("320.00").Equal(expected), "expected %s", expected)
}

func TestExpectedBalance_RefundsAndCashIn(t *testing.T) {
	movements := []domain.CashMovement{
		movement(t, domain.MovementCashIn, domain.TenderCash, "50.00", nil),
		movement(t, domain.MovementRefund, domain.TenderCash, "12.50", id(3)),
		movement(t, domain.MovementRefund, domain.TenderCredit, "99.00", id(4)),
	}

	assert.True(t, dec("137.50").Equal(domain.ExpectedBalance(dec("100"), movements)))
}

func TestBuildZReport(t *testing.T) {
	openedAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	shift, err := domain.NewShift(1, 1, 7, dec("200.00"), openedAt)
	require.NoError(t, err)
	shift.ID = 5

	movements := []domain.CashMovement{
		movement(t, domain.MovementPayment, domain.TenderCash, "150.00", id(1)),
		movement(t, domain.MovementCashOut, domain.TenderCash, "30.00", nil),
	}
	orders := []domain.ShiftOrder{
		{ID: 1, PaymentMethod: domain.MethodCash, Status: domain.OrderDelivered, TotalAmount: dec("150.00")},
		{ID: 2, PaymentMethod: domain.MethodCash, Status: domain.OrderReceived, TotalAmount: dec("20.00")},
		{ID: 3, PaymentMethod: domain.MethodCash, Status: domain.OrderCancelled, TotalAmount: dec("9.00")},
		{ID: 4, PaymentMethod: domain.MethodOnline, Status: domain.OrderReady, TotalAmount: dec("35.00")},
	}

	t.Run("open shift has no variance", func(t *testing.T) {
		report := domain.BuildZReport(shift, movements, orders)

		assert.True(t, dec("320.00").Equal(report.ExpectedBalance))
		assert.Nil(t, report.Variance)
		assert.Nil(t, report.ClosingBalance)
	})

	t.Run("closed shift reports variance and untracked cash", func(t *testing.T) {
		closed := *shift
		expected := domain.ExpectedBalance(closed.OpeningBalance, movements)
		require.NoError(t, closed.Close(dec("315.00"), expected, "short", openedAt.Add(8*time.Hour)))

		report := domain.BuildZReport(&closed, movements, orders)

		require.NotNil(t, report.Variance)
		assert.True(t, dec("-5.00").Equal(*report.Variance), "variance %s", report.Variance)
		assert.Equal(t, []int64{2}, report.UntrackedCashOrders)
		assert.Equal(t, 1, report.Subtotals[domain.MovementPayment].Count)
		assert.True(t, dec("30").Equal(report.Subtotals[domain.MovementCashOut].Total))
		assert.Equal(t, 0, report.Subtotals[domain.MovementRefund].Count)
		assert.Equal(t, 2, report.MovementCount)
	})

	t.Run("closing twice fails", func(t *testing.T) {
		closed := *shift
		require.NoError(t, closed.Close(dec("1"), dec("1"), "", time.Now()))

		assert.ErrorIs(t, closed.Close(dec("1"), dec("1"), "", time.Now()), domain.ErrShiftClosed)
	})
}
