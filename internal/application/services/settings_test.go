package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DanielPopoola/dinepay/internal/application/services"
	"github.com/DanielPopoola/dinepay/internal/application/services/testhelpers"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsCache struct {
	views   map[int64]domain.PaymentSettingsView
	getErr  error
	setErr  error
	gets    int
	setsFor []int64
}

func (c *fakeSettingsCache) Get(_ context.Context, restaurantID int64) (*domain.PaymentSettingsView, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.views[restaurantID]
	if !ok {
		return nil, false, nil
	}
	return &v, true, nil
}

func (c *fakeSettingsCache) Set(_ context.Context, view domain.PaymentSettingsView) error {
	c.setsFor = append(c.setsFor, view.RestaurantID)
	if c.setErr != nil {
		return c.setErr
	}
	if c.views == nil {
		c.views = map[int64]domain.PaymentSettingsView{}
	}
	c.views[view.RestaurantID] = view
	return nil
}

func TestSettingsService_GetPaymentSettings(t *testing.T) {
	t.Run("miss loads from store and fills cache", func(t *testing.T) {
		store := testhelpers.NewMemStore()
		seedSettings(t, store, true)
		cache := &fakeSettingsCache{}
		svc := services.NewSettingsService(store, cache, discardLogger())

		view, err := svc.GetPaymentSettings(scopedCtx())

		require.NoError(t, err)
		assert.True(t, view.CardEnabled)
		assert.Equal(t, domain.VerificationVerified, view.Verification)
		assert.Equal(t, []int64{testRestaurant}, cache.setsFor)
	})

	t.Run("hit skips the store", func(t *testing.T) {
		cache := &fakeSettingsCache{views: map[int64]domain.PaymentSettingsView{
			testRestaurant: {RestaurantID: testRestaurant, Verification: domain.VerificationRejected},
		}}
		svc := services.NewSettingsService(testhelpers.NewMemStore(), cache, discardLogger())

		view, err := svc.GetPaymentSettings(scopedCtx())

		require.NoError(t, err)
		assert.Equal(t, domain.VerificationRejected, view.Verification)
		assert.Empty(t, cache.setsFor)
	})

	t.Run("cache failures fall through", func(t *testing.T) {
		store := testhelpers.NewMemStore()
		seedSettings(t, store, false)
		cache := &fakeSettingsCache{getErr: errors.New("dial tcp"), setErr: errors.New("dial tcp")}
		svc := services.NewSettingsService(store, cache, discardLogger())

		view, err := svc.GetPaymentSettings(scopedCtx())

		require.NoError(t, err)
		assert.False(t, view.CardEnabled)
		assert.Equal(t, domain.VerificationPending, view.Verification)
	})

	t.Run("no cache configured", func(t *testing.T) {
		svc := services.NewSettingsService(testhelpers.NewMemStore(), nil, discardLogger())
		_, err := svc.GetPaymentSettings(scopedCtx())
		assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
	})
}
