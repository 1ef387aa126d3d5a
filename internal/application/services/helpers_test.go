package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DanielPopoola/dinepay/internal/application/services/testhelpers"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/tenant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testTenant     int64 = 1
	testRestaurant int64 = 1
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scopedCtx() context.Context {
	return tenant.WithScope(context.Background(), tenant.Scope{TenantID: testTenant, RestaurantID: testRestaurant})
}

func seedMenu(t *testing.T, store *testhelpers.MemStore) {
	t.Helper()
	store.AddMenuItem(domain.MenuItem{
		ID: 10, TenantID: testTenant, RestaurantID: testRestaurant,
		Name: "Pizza", BasePrice: dec("42.00"), Available: true,
		Variants: []domain.VariantOption{{ID: 1, Name: "Large", PriceDelta: dec("5.00"), Active: true}},
		AddonGroups: []domain.AddonGroup{{
			ID: 100, Name: "Extras", Active: true, SelectionType: domain.SelectionMultiple,
			Options: []domain.AddonOption{
				{ID: 1001, Name: "Cheese", PriceDelta: dec("3.00"), Active: true},
				{ID: 1002, Name: "Olives", PriceDelta: dec("1.50"), Active: true},
			},
		}},
	})
	store.AddMenuItem(domain.MenuItem{
		ID: 11, TenantID: testTenant, RestaurantID: testRestaurant,
		Name: "Soda", BasePrice: dec("2.50"), Available: true,
		UsesAddonSet: true,
	})
	store.SetCatalog(testRestaurant, domain.Catalog{
		AddonGroups: []domain.AddonGroup{{
			ID: 500, Name: "Ice", Active: true, IsRequired: true, SelectionType: domain.SelectionSingle,
			Options: []domain.AddonOption{{ID: 5001, Name: "Crushed", PriceDelta: dec("0.25"), Active: true}},
		}},
	})
}

func seedSettings(t *testing.T, store *testhelpers.MemStore, verified bool) {
	t.Helper()
	status := domain.VerificationPending
	if verified {
		status = domain.VerificationVerified
	}
	store.AddSettings(domain.PaymentSettings{
		TenantID: testTenant, RestaurantID: testRestaurant,
		AcceptsCash: true, AcceptsCard: true, Verification: status,
		Terminal: domain.Terminal{MerchantID: "M1", TerminalID: "T1", APIKey: "key", Referer: "https://shop.example.test"},
	})
}

// seedOnlineOrder stores an unpaid card order totalling 103.00.
func seedOnlineOrder(t *testing.T, store *testhelpers.MemStore) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(testTenant, testRestaurant, domain.Customer{Name: "Ana"},
		domain.ChannelOnline, domain.DeliveryPickup, domain.MethodOnline,
		[]domain.PricedLine{{MenuItemID: 10, Quantity: 2, UnitPrice: dec("51.50"), LineTotal: dec("103.00")}})
	require.NoError(t, err)
	store.PutOrder(order)
	return order
}
