package domain_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(1, 1, domain.Customer{Name: "Ana", Phone: "555"},
		domain.ChannelOnline, domain.DeliveryPickup, domain.MethodOnline,
		[]domain.PricedLine{
			{MenuItemID: 10, Quantity: 2, UnitPrice: dec("51.50"), LineTotal: dec("103.00")},
			{MenuItemID: 11, Quantity: 1, UnitPrice: dec("4.25"), LineTotal: dec("4.25")},
		})
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("sums line totals", func(t *testing.T) {
		order := createTestOrder(t)

		assert.True(t, dec("107.25").Equal(order.TotalAmount))
		assert.Equal(t, domain.OrderReceived, order.Status)
		assert.Equal(t, domain.PaymentUnpaid, order.PaymentStatus)
		assert.Len(t, order.Lines, 2)
		assert.True(t, dec("51.50").Equal(order.Lines[0].UnitPriceAtOrder))
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		_, err := domain.NewOrder(1, 1, domain.Customer{}, domain.ChannelPOS, domain.DeliveryDineIn, domain.MethodCash, nil)

		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("rejects online card at the counter", func(t *testing.T) {
		_, err := domain.NewOrder(1, 1, domain.Customer{}, domain.ChannelPOS, domain.DeliveryDineIn, domain.MethodOnline,
			[]domain.PricedLine{{MenuItemID: 1, Quantity: 1, UnitPrice: dec("1"), LineTotal: dec("1")}})

		assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
	})
}

func TestOrder_StatusTransitions(t *testing.T) {
	t.Run("walks the fulfilment flow", func(t *testing.T) {
		order := createTestOrder(t)

		for _, next := range []domain.OrderStatus{
			domain.OrderPreparing, domain.OrderReady, domain.OrderDelivering, domain.OrderDelivered,
		} {
			require.NoError(t, order.AdvanceTo(next))
		}
		assert.True(t, order.IsTerminal())
	})

	t.Run("cannot skip steps", func(t *testing.T) {
		order := createTestOrder(t)

		err := order.AdvanceTo(domain.OrderReady)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, domain.OrderReceived, order.Status)
	})

	t.Run("cancel from non-terminal state", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.AdvanceTo(domain.OrderPreparing))

		require.NoError(t, order.Cancel())
		assert.Equal(t, domain.OrderCancelled, order.Status)
	})

	t.Run("cannot cancel delivered order", func(t *testing.T) {
		order := createTestOrder(t)
		order.Status = domain.OrderDelivered

		assert.ErrorIs(t, order.Cancel(), domain.ErrInvalidTransition)
	})

	t.Run("cancelled is absorbing", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Cancel())

		assert.ErrorIs(t, order.AdvanceTo(domain.OrderPreparing), domain.ErrInvalidTransition)
		assert.ErrorIs(t, order.Cancel(), domain.ErrInvalidTransition)
	})
}

func TestOrder_PaymentTransitions(t *testing.T) {
	t.Run("pending then paid", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.MarkPaymentPending())

		at := time.Now()
		require.NoError(t, order.MarkPaid("tx-1", dec("107.25"), at))

		assert.True(t, order.IsPaid())
		require.NotNil(t, order.TransactionID)
		assert.Equal(t, "tx-1", *order.TransactionID)
		assert.Equal(t, at, *order.PaidAt)
	})

	t.Run("paid is set only once", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.MarkPaid("tx-1", dec("107.25"), time.Now()))

		assert.ErrorIs(t, order.MarkPaid("tx-2", dec("107.25"), time.Now()), domain.ErrInvalidTransition)
		assert.Equal(t, "tx-1", *order.TransactionID)
	})

	t.Run("paid is never downgraded", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.MarkPaid("tx-1", dec("107.25"), time.Now()))

		assert.ErrorIs(t, order.MarkPaymentFailed(), domain.ErrInvalidTransition)
		assert.ErrorIs(t, order.MarkPaymentPending(), domain.ErrInvalidTransition)
		assert.Equal(t, domain.PaymentPaid, order.PaymentStatus)
	})

	t.Run("failed payment can be retried", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.MarkPaymentFailed())

		assert.NoError(t, order.MarkPaymentPending())
	})

	t.Run("cancelled order cannot start payment", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Cancel())

		assert.ErrorIs(t, order.MarkPaymentPending(), domain.ErrInvalidTransition)
	})
}
