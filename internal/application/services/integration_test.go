package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application/mocks"
	"github.com/DanielPopoola/dinepay/internal/application/services"
	"github.com/DanielPopoola/dinepay/internal/application/services/testhelpers"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// PostgresFlowTestSuite runs the services against a real database so row
// locks and the open-shift index decide the races.
type PostgresFlowTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDatabase
	store  *postgres.Store
}

func TestPostgresFlowSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresFlowTestSuite))
}

func (s *PostgresFlowTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDatabase(s.T())
	s.store = postgres.NewStore(s.testDB.DB)
}

func (s *PostgresFlowTestSuite) TearDownSuite() {
	s.testDB.Cleanup(s.T())
}

func (s *PostgresFlowTestSuite) SetupTest() {
	s.testDB.CleanTables(s.T())
	s.testDB.Exec(s.T(), `INSERT INTO menu_items (id, tenant_id, restaurant_id, name, base_price) VALUES (10, 1, 1, 'Pizza', 42.00)`)
	s.testDB.Exec(s.T(), `INSERT INTO menu_variants (id, tenant_id, restaurant_id, menu_item_id, name, price_delta) VALUES (1, 1, 1, 10, 'Large', 5.00)`)
	s.testDB.Exec(s.T(), `INSERT INTO addon_groups (id, tenant_id, restaurant_id, menu_item_id, name) VALUES (100, 1, 1, 10, 'Extras')`)
	s.testDB.Exec(s.T(), `INSERT INTO addon_options (id, addon_group_id, name, price_delta) VALUES (1001, 100, 'Cheese', 3.00), (1002, 100, 'Olives', 1.50)`)
}

func (s *PostgresFlowTestSuite) placeOnlineOrder() *domain.Order {
	svc := services.NewOrderService(s.store, nil, discardLogger())
	order, err := svc.PlaceOrder(scopedCtx(), services.PlaceOrderCommand{
		Customer:       domain.Customer{Name: "Ana"},
		Channel:        domain.ChannelOnline,
		DeliveryMethod: domain.DeliveryPickup,
		PaymentMethod:  domain.MethodOnline,
		Lines:          []services.CartLine{{MenuItemID: 10, VariantID: ptr(int64(1)), AddonIDs: []int64{1001, 1002}, Quantity: 2}},
	})
	s.Require().NoError(err)
	s.Require().True(dec("103.00").Equal(order.TotalAmount), "total %s", order.TotalAmount)
	return order
}

func (s *PostgresFlowTestSuite) TestConcurrentCallbacks_SettleOnce() {
	order := s.placeOnlineOrder()
	session, err := domain.NewPaymentSession("tok-pg", domain.SessionOrder, order.ID, testTenant, testRestaurant,
		order.TotalAmount, time.Now(), 15*time.Minute)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Sessions().Create(scopedCtx(), session))

	notifier := mocks.NewMockNotifier(s.T())
	notifier.EXPECT().Notify(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	reconciler := services.NewOrderReconciler(s.store, notifier, reconcilerCfg, discardLogger())
	params := domain.CallbackParams{TransactionID: "TX-PG", ResultCode: "00", Amount: "103,00", OrderRef: fmt.Sprint(order.ID)}

	const callers = 8
	var wg sync.WaitGroup
	outcomes := make(chan services.CallbackOutcome, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes <- reconciler.HandleSuccess(context.Background(), params)
		}()
	}
	wg.Wait()
	close(outcomes)

	settled := 0
	for out := range outcomes {
		s.Require().True(out.Success(), "callback failed: %v", out.Err)
		if !out.AlreadyPaid {
			settled++
		}
	}
	s.Equal(1, settled)

	stored, err := s.store.Orders().FindByID(scopedCtx(), order.ID)
	s.Require().NoError(err)
	s.Equal(domain.PaymentPaid, stored.PaymentStatus)
	completed, err := s.store.Sessions().FindByToken(scopedCtx(), "tok-pg")
	s.Require().NoError(err)
	s.Equal(domain.SessionCompleted, completed.Status)
}

func (s *PostgresFlowTestSuite) TestConcurrentOpenShift_IndexDecides() {
	svc := services.NewShiftService(s.store, nil, discardLogger())

	const cashiers = 6
	var wg sync.WaitGroup
	errs := make(chan error, cashiers)
	for i := range cashiers {
		wg.Add(1)
		go func(cashier int64) {
			defer wg.Done()
			_, err := svc.OpenShift(scopedCtx(), services.OpenShiftCommand{CashierID: cashier, OpeningBalance: dec("100")})
			errs <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(errs)

	opened := 0
	for err := range errs {
		if err == nil {
			opened++
			continue
		}
		s.ErrorIs(err, domain.ErrShiftAlreadyOpen)
	}
	s.Equal(1, opened)
}

func (s *PostgresFlowTestSuite) TestShiftLifecycle_ZReport() {
	svc := services.NewShiftService(s.store, nil, discardLogger())
	ctx := scopedCtx()

	_, err := svc.OpenShift(ctx, services.OpenShiftCommand{CashierID: 7, OpeningBalance: dec("200.00")})
	s.Require().NoError(err)

	orders := services.NewOrderService(s.store, nil, discardLogger())
	posOrder, err := orders.PlaceOrder(ctx, services.PlaceOrderCommand{
		Channel:        domain.ChannelPOS,
		DeliveryMethod: domain.DeliveryDineIn,
		PaymentMethod:  domain.MethodCash,
		Lines:          []services.CartLine{{MenuItemID: 10, Quantity: 1}},
	})
	s.Require().NoError(err)

	_, err = svc.RecordMovement(ctx, services.RecordMovementCommand{
		Type: domain.MovementCashOut, Method: domain.TenderCash, Amount: dec("30.00"),
	})
	s.Require().NoError(err)

	report, err := svc.CloseShift(ctx, services.CloseShiftCommand{ClosingBalance: dec("210.00")})
	s.Require().NoError(err)

	// 200 opening + 42 POS cash payment - 30 cash out.
	s.True(dec("212.00").Equal(report.ExpectedBalance), "expected %s", report.ExpectedBalance)
	s.True(dec("-2.00").Equal(*report.Variance))
	s.Empty(report.UntrackedCashOrders)
	s.Equal(1, report.Subtotals[domain.MovementPayment].Count)
	s.NotZero(posOrder.ID)
}

func (s *PostgresFlowTestSuite) TestPOSOrdersRacingClose_LedgerStaysBalanced() {
	shifts := services.NewShiftService(s.store, nil, discardLogger())
	orders := services.NewOrderService(s.store, nil, discardLogger())
	ctx := scopedCtx()

	opened, err := shifts.OpenShift(ctx, services.OpenShiftCommand{CashierID: 7, OpeningBalance: dec("100.00")})
	s.Require().NoError(err)

	const tills = 8
	var wg sync.WaitGroup
	placed := make(chan error, tills)
	for range tills {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := orders.PlaceOrder(scopedCtx(), services.PlaceOrderCommand{
				Channel:        domain.ChannelPOS,
				DeliveryMethod: domain.DeliveryDineIn,
				PaymentMethod:  domain.MethodCash,
				Lines:          []services.CartLine{{MenuItemID: 10, Quantity: 1}},
			})
			placed <- err
		}()
	}
	var report *domain.ZReport
	var closeErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		report, closeErr = shifts.CloseShift(scopedCtx(), services.CloseShiftCommand{ClosingBalance: dec("100.00")})
	}()
	wg.Wait()
	close(placed)

	s.Require().NoError(closeErr)
	for err := range placed {
		s.Require().NoError(err)
	}

	closed, err := s.store.Shifts().FindByID(ctx, opened.ID)
	s.Require().NoError(err)
	s.Require().NotNil(closed.ClosedAt)
	s.Require().NotNil(closed.ExpectedBalance)

	movements, err := s.store.Shifts().Movements(ctx, closed.ID)
	s.Require().NoError(err)
	ledger := domain.ExpectedBalance(closed.OpeningBalance, movements)
	s.True(ledger.Equal(*closed.ExpectedBalance), "ledger %s, stored %s", ledger, *closed.ExpectedBalance)
	s.True(ledger.Equal(report.ExpectedBalance), "ledger %s, report %s", ledger, report.ExpectedBalance)
	s.Equal(len(movements), report.Subtotals[domain.MovementPayment].Count)
}
