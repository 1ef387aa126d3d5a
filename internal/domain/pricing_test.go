package domain_test

import (
	"testing"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func id(v int64) *int64 { return &v }

func createTestItem(t *testing.T) domain.MenuItem {
	t.Helper()
	return domain.MenuItem{
		ID:           10,
		RestaurantID: 1,
		Name:         "Pizza",
		BasePrice:    dec("42.00"),
		Available:    true,
		Variants: []domain.VariantOption{
			{ID: 1, Name: "Large", PriceDelta: dec("5.00"), Active: true},
			{ID: 2, Name: "Family", PriceDelta: dec("9.00"), Active: false},
		},
		AddonGroups: []domain.AddonGroup{
			{
				ID:            100,
				Name:          "Extras",
				MaxSelections: 3,
				SelectionType: domain.SelectionMultiple,
				Active:        true,
				Options: []domain.AddonOption{
					{ID: 1001, Name: "Cheese", PriceDelta: dec("3.00"), Active: true},
					{ID: 1002, Name: "Olives", PriceDelta: dec("1.50"), Active: true},
					{ID: 1003, Name: "Truffle", PriceDelta: dec("8.00"), Active: false},
				},
			},
		},
	}
}

func TestPriceLine_Scenario(t *testing.T) {
	item := createTestItem(t)

	line, err := domain.PriceLine(item, domain.Catalog{}, domain.Selection{
		VariantID: id(1),
		AddonIDs:  []int64{1001, 1002},
		Quantity:  2,
	})

	require.NoError(t, err)
	assert.True(t, dec("51.50").Equal(line.UnitPrice), "unit price %s", line.UnitPrice)
	assert.True(t, dec("103.00").Equal(line.LineTotal), "line total %s", line.LineTotal)
	require.NotNil(t, line.Variant)
	assert.Equal(t, "Large", line.Variant.Name)
	assert.False(t, line.Variant.Shared)
	require.Len(t, line.Addons, 2)
	assert.Equal(t, int64(100), line.Addons[0].GroupID)
	assert.Equal(t, "Olives", line.Addons[1].Name)
}

func TestPriceLine_IsDeterministic(t *testing.T) {
	item := createTestItem(t)
	sel := domain.Selection{VariantID: id(1), AddonIDs: []int64{1002}, Quantity: 3}

	first, err := domain.PriceLine(item, domain.Catalog{}, sel)
	require.NoError(t, err)
	second, err := domain.PriceLine(item, domain.Catalog{}, sel)
	require.NoError(t, err)

	assert.True(t, first.UnitPrice.Equal(second.UnitPrice))
	assert.True(t, first.LineTotal.Equal(domain.Round2(first.UnitPrice.Mul(decimal.NewFromInt(3)))))
}

func TestPriceLine_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.MenuItem)
		sel    domain.Selection
		reason string
		group  string
		limit  int
	}{
		{
			name:   "zero quantity",
			sel:    domain.Selection{Quantity: 0},
			reason: domain.ReasonQuantity,
		},
		{
			name:   "unavailable item",
			mutate: func(it *domain.MenuItem) { it.Available = false },
			sel:    domain.Selection{Quantity: 1},
			reason: domain.ReasonItemUnavailable,
		},
		{
			name:   "unknown variant",
			sel:    domain.Selection{VariantID: id(99), Quantity: 1},
			reason: domain.ReasonVariant,
		},
		{
			name:   "inactive variant",
			sel:    domain.Selection{VariantID: id(2), Quantity: 1},
			reason: domain.ReasonVariant,
		},
		{
			name:   "inactive add-on",
			sel:    domain.Selection{AddonIDs: []int64{1003}, Quantity: 1},
			reason: domain.ReasonAddonUnavailable,
		},
		{
			name:   "add-on from another item",
			sel:    domain.Selection{AddonIDs: []int64{5555}, Quantity: 1},
			reason: domain.ReasonAddonUnavailable,
		},
		{
			name: "group maximum",
			mutate: func(it *domain.MenuItem) {
				it.AddonGroups[0].MaxSelections = 1
			},
			sel:    domain.Selection{AddonIDs: []int64{1001, 1002}, Quantity: 1},
			reason: domain.ReasonAddonMax,
			group:  "Extras",
			limit:  1,
		},
		{
			name: "item cap overrides group maximum",
			mutate: func(it *domain.MenuItem) {
				limit := 1
				it.MaxAddons = &limit
			},
			sel:    domain.Selection{AddonIDs: []int64{1001, 1002}, Quantity: 1},
			reason: domain.ReasonAddonMax,
			group:  "Extras",
			limit:  1,
		},
		{
			name: "single selection group",
			mutate: func(it *domain.MenuItem) {
				it.AddonGroups[0].SelectionType = domain.SelectionSingle
			},
			sel:    domain.Selection{AddonIDs: []int64{1001, 1002}, Quantity: 1},
			reason: domain.ReasonAddonSingle,
			group:  "Extras",
			limit:  1,
		},
		{
			name: "minimum selections",
			mutate: func(it *domain.MenuItem) {
				it.AddonGroups[0].MinSelections = 2
			},
			sel:    domain.Selection{AddonIDs: []int64{1001}, Quantity: 1},
			reason: domain.ReasonAddonMin,
			group:  "Extras",
			limit:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := createTestItem(t)
			if tt.mutate != nil {
				tt.mutate(&item)
			}

			_, err := domain.PriceLine(item, domain.Catalog{}, tt.sel)

			require.ErrorIs(t, err, domain.ErrSelectionInvalid)
			var selErr *domain.SelectionError
			require.ErrorAs(t, err, &selErr)
			assert.Equal(t, tt.reason, selErr.Reason)
			assert.Equal(t, tt.group, selErr.Group)
			assert.Equal(t, tt.limit, selErr.Limit)
		})
	}
}

func TestPriceLine_RequiredGroupActsAsMinimumOne(t *testing.T) {
	item := createTestItem(t)
	item.AddonGroups[0].IsRequired = true
	item.AddonGroups[0].MinSelections = 0

	t.Run("zero selections fail", func(t *testing.T) {
		_, err := domain.PriceLine(item, domain.Catalog{}, domain.Selection{Quantity: 1})

		var selErr *domain.SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, domain.ReasonAddonMin, selErr.Reason)
		assert.Equal(t, 1, selErr.Limit)
	})

	t.Run("one selection succeeds", func(t *testing.T) {
		line, err := domain.PriceLine(item, domain.Catalog{}, domain.Selection{
			AddonIDs: []int64{1002},
			Quantity: 1,
		})

		require.NoError(t, err)
		assert.True(t, dec("43.50").Equal(line.UnitPrice))
	})
}

func TestPriceLine_DuplicateAddonsCountOnce(t *testing.T) {
	item := createTestItem(t)
	item.AddonGroups[0].SelectionType = domain.SelectionSingle

	line, err := domain.PriceLine(item, domain.Catalog{}, domain.Selection{
		AddonIDs: []int64{1001, 1001},
		Quantity: 1,
	})

	require.NoError(t, err)
	assert.Len(t, line.Addons, 1)
	assert.True(t, dec("45.00").Equal(line.UnitPrice))
}

func TestPriceLine_SharedCatalog(t *testing.T) {
	shared := domain.Catalog{
		Variants: []domain.VariantOption{
			{ID: 7, Name: "Double", PriceDelta: dec("2.25"), Active: true},
		},
		AddonGroups: []domain.AddonGroup{
			{
				ID: 500, Name: "Sauces", Active: true, SelectionType: domain.SelectionMultiple,
				Options: []domain.AddonOption{{ID: 5001, Name: "Garlic", PriceDelta: dec("0.50"), Active: true}},
			},
			{
				ID: 501, Name: "Drinks", Active: true, IsRequired: true, SelectionType: domain.SelectionSingle,
				Options: []domain.AddonOption{{ID: 5101, Name: "Cola", PriceDelta: dec("1.99"), Active: true}},
			},
		},
	}

	item := createTestItem(t)
	item.UsesVariantSet = true
	item.UsesAddonSet = true
	item.AddonGroupScope = []int64{500}

	t.Run("uses restaurant-wide variants", func(t *testing.T) {
		line, err := domain.PriceLine(item, shared, domain.Selection{VariantID: id(7), Quantity: 1})

		require.NoError(t, err)
		require.NotNil(t, line.Variant)
		assert.True(t, line.Variant.Shared)
		assert.True(t, dec("44.25").Equal(line.UnitPrice))
	})

	t.Run("item variants are not resolvable", func(t *testing.T) {
		_, err := domain.PriceLine(item, shared, domain.Selection{VariantID: id(1), Quantity: 1})

		var selErr *domain.SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, domain.ReasonVariant, selErr.Reason)
	})

	t.Run("scope hides groups outside it", func(t *testing.T) {
		_, err := domain.PriceLine(item, shared, domain.Selection{AddonIDs: []int64{5101}, Quantity: 1})

		var selErr *domain.SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, domain.ReasonAddonUnavailable, selErr.Reason)
	})

	t.Run("empty scope applies every group", func(t *testing.T) {
		unscoped := item
		unscoped.AddonGroupScope = nil

		_, err := domain.PriceLine(unscoped, shared, domain.Selection{AddonIDs: []int64{5001}, Quantity: 1})

		var selErr *domain.SelectionError
		require.ErrorAs(t, err, &selErr)
		assert.Equal(t, domain.ReasonAddonMin, selErr.Reason)
		assert.Equal(t, "Drinks", selErr.Group)
	})
}

func TestRound2_HalfUp(t *testing.T) {
	tests := map[string]string{
		"1.005":  "1.01",
		"1.004":  "1",
		"2.675":  "2.68",
		"10":     "10",
		"-1.005": "-1.01",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.True(t, dec(want).Equal(domain.Round2(dec(in))), "round2(%s) = %s", in, domain.Round2(dec(in)))
		})
	}
}
