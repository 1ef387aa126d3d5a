package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/redis/go-redis/v9"
)

const settingsKeyPrefix = "payment_settings:"

// SettingsCache stores the public payment-settings view as JSON.
type SettingsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ application.SettingsCache = (*SettingsCache)(nil)

func NewSettingsCache(rdb *redis.Client, ttl time.Duration) *SettingsCache {
	return &SettingsCache{rdb: rdb, ttl: ttl}
}

func settingsKey(restaurantID int64) string {
	return fmt.Sprintf("%s%d", settingsKeyPrefix, restaurantID)
}

func (c *SettingsCache) Get(ctx context.Context, restaurantID int64) (*domain.PaymentSettingsView, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, nil
	}
	raw, err := c.rdb.Get(ctx, settingsKey(restaurantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get settings cache: %w", err)
	}

	var view domain.PaymentSettingsView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, false, fmt.Errorf("decode settings cache: %w", err)
	}
	return &view, true, nil
}

func (c *SettingsCache) Set(ctx context.Context, view domain.PaymentSettingsView) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("encode settings cache: %w", err)
	}
	if err := c.rdb.Set(ctx, settingsKey(view.RestaurantID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set settings cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached view after a settings change.
func (c *SettingsCache) Invalidate(ctx context.Context, restaurantID int64) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, settingsKey(restaurantID)).Err()
}
