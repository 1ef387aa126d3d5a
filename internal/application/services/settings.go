package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/tenant"
)

type SettingsService struct {
	store  application.Store
	cache  application.SettingsCache
	logger *slog.Logger
}

func NewSettingsService(store application.Store, cache application.SettingsCache, logger *slog.Logger) *SettingsService {
	return &SettingsService{store: store, cache: cache, logger: logger}
}

// GetPaymentSettings returns the accepted methods and verification status of
// the caller's restaurant. Cache errors fall through to the database.
func (s *SettingsService) GetPaymentSettings(ctx context.Context) (*domain.PaymentSettingsView, error) {
	scope, err := tenant.MustRestaurant(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		view, ok, err := s.cache.Get(ctx, scope.RestaurantID)
		switch {
		case err != nil:
			s.logger.Warn("payment settings cache read failed", "restaurant_id", scope.RestaurantID, "error", err)
		case ok:
			return view, nil
		}
	}

	settings, err := s.store.Settings().FindByRestaurant(ctx, scope.RestaurantID)
	if err != nil {
		return nil, err
	}
	view := settings.View()

	if s.cache != nil {
		if err := s.cache.Set(ctx, view); err != nil {
			s.logger.Warn("payment settings cache write failed", "restaurant_id", scope.RestaurantID, "error", err)
		}
	}
	return &view, nil
}
