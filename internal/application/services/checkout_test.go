package services_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/application/mocks"
	"github.com/DanielPopoola/dinepay/internal/application/services"
	"github.com/DanielPopoola/dinepay/internal/application/services/testhelpers"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var checkoutCfg = services.CheckoutConfig{
	SessionTTL:             15 * time.Minute,
	OrderSuccessURL:        "https://api.example.test/payments/callback/success",
	OrderErrorURL:          "https://api.example.test/payments/callback/error",
	SubscriptionSuccessURL: "https://api.example.test/subscriptions/callback/success",
	SubscriptionErrorURL:   "https://api.example.test/subscriptions/callback/error",
	PlatformTerminal:       domain.Terminal{MerchantID: "PLATFORM", TerminalID: "PT", Passphrase: "pass"},
}

func TestCheckoutService_StartOrderPayment(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("signs then opens a session", func(t *testing.T) {
		store := testhelpers.NewMemStore()
		seedSettings(t, store, true)
		order := seedOnlineOrder(t, store)
		gateway := mocks.NewMockGateway(t)
		gateway.EXPECT().Sign(mock.Anything, mock.MatchedBy(func(req application.PaymentRequest) bool {
			return req.Reference == order.ID &&
				req.Amount.Equal(dec("103.00")) &&
				req.Terminal.APIKey == "key" &&
				req.SessionToken != "" &&
				req.SuccessURL == checkoutCfg.OrderSuccessURL
		})).Return(&application.SignedPayment{Signature: "sig", RedirectURL: "https://gw.example.test/pay?x=1"}, nil).Once()

		svc := services.NewCheckoutService(store, gateway, checkoutCfg, discardLogger()).
			WithClock(func() time.Time { return now })

		result, err := svc.StartOrderPayment(scopedCtx(), order.ID)

		require.NoError(t, err)
		assert.Equal(t, "https://gw.example.test/pay?x=1", result.RedirectURL)
		assert.Equal(t, now.Add(15*time.Minute), result.ExpiresAt)

		session, ok := store.Session(result.SessionToken)
		require.True(t, ok)
		assert.Equal(t, domain.SessionPending, session.Status)
		assert.Equal(t, order.ID, session.TargetID)
		assert.True(t, dec("103.00").Equal(session.Amount))

		stored, _ := store.Order(order.ID)
		assert.Equal(t, domain.PaymentPending, stored.PaymentStatus)
	})

	t.Run("signing failure leaves no session", func(t *testing.T) {
		store := testhelpers.NewMemStore()
		seedSettings(t, store, true)
		order := seedOnlineOrder(t, store)
		gateway := mocks.NewMockGateway(t)
		gateway.EXPECT().Sign(mock.Anything, mock.Anything).
			Return(nil, &application.GatewayError{Code: "E42", Message: "referer mismatch"}).Once()

		svc := services.NewCheckoutService(store, gateway, checkoutCfg, discardLogger())

		_, err := svc.StartOrderPayment(scopedCtx(), order.ID)

		require.ErrorIs(t, err, domain.ErrGatewaySigningFailed)
		gwErr, ok := application.IsGatewayError(err)
		require.True(t, ok)
		assert.Equal(t, "referer mismatch", gwErr.Message)
		assert.Zero(t, store.SessionCreates)
		stored, _ := store.Order(order.ID)
		assert.Equal(t, domain.PaymentUnpaid, stored.PaymentStatus)
	})

	t.Run("unverified restaurant cannot take cards", func(t *testing.T) {
		store := testhelpers.NewMemStore()
		seedSettings(t, store, false)
		order := seedOnlineOrder(t, store)

		svc := services.NewCheckoutService(store, mocks.NewMockGateway(t), checkoutCfg, discardLogger())

		_, err := svc.StartOrderPayment(scopedCtx(), order.ID)

		assert.ErrorIs(t, err, domain.ErrCardPaymentsUnavailable)
	})

	t.Run("paid order is rejected before signing", func(t *testing.T) {
		store := testhelpers.NewMemStore()
		seedSettings(t, store, true)
		order := seedOnlineOrder(t, store)
		require.NoError(t, order.MarkPaid("tx", order.TotalAmount, now))
		store.PutOrder(order)

		svc := services.NewCheckoutService(store, mocks.NewMockGateway(t), checkoutCfg, discardLogger())

		_, err := svc.StartOrderPayment(scopedCtx(), order.ID)

		assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	})

	t.Run("cash order cannot start card checkout", func(t *testing.T) {
		store := testhelpers.NewMemStore()
		seedSettings(t, store, true)
		order := seedOnlineOrder(t, store)
		order.PaymentMethod = domain.MethodCash
		store.PutOrder(order)

		svc := services.NewCheckoutService(store, mocks.NewMockGateway(t), checkoutCfg, discardLogger())

		_, err := svc.StartOrderPayment(scopedCtx(), order.ID)

		assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
	})
}

func TestCheckoutService_StartSubscriptionPayment(t *testing.T) {
	store := testhelpers.NewMemStore()
	store.AddPlan(domain.SubscriptionPlan{Code: "pro-3", Name: "Pro", Months: 3, Price: dec("89.99"), AICredits: 500})
	gateway := mocks.NewMockGateway(t)
	gateway.EXPECT().Sign(mock.Anything, mock.MatchedBy(func(req application.PaymentRequest) bool {
		return req.Terminal.Passphrase == "pass" && req.Amount.Equal(dec("89.99"))
	})).Return(&application.SignedPayment{Signature: "sig", RedirectURL: "https://gw.example.test/pay"}, nil).Once()

	svc := services.NewCheckoutService(store, gateway, checkoutCfg, discardLogger())

	result, err := svc.StartSubscriptionPayment(scopedCtx(), "pro-3")

	require.NoError(t, err)
	payment, ok := store.SubscriptionPayment(result.TargetID)
	require.True(t, ok)
	assert.Equal(t, domain.PaymentPending, payment.PaymentStatus)
	session, ok := store.Session(result.SessionToken)
	require.True(t, ok)
	assert.Equal(t, domain.SessionSubscription, session.Kind)

	_, err = svc.StartSubscriptionPayment(scopedCtx(), "unknown")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}
