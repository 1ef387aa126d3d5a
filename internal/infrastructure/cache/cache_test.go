package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/infrastructure/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())
	return rdb
}

func TestSettingsCache_Disabled(t *testing.T) {
	c := cache.NewSettingsCache(nil, time.Minute)

	view, ok, err := c.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, view)

	assert.NoError(t, c.Set(context.Background(), domain.PaymentSettingsView{RestaurantID: 1}))
}

func TestShiftLocker_Disabled(t *testing.T) {
	l := cache.NewShiftLocker(nil, time.Second)

	unlock, err := l.Lock(context.Background(), 1)
	assert.Nil(t, unlock)
	assert.True(t, errors.Is(err, cache.ErrLockUnavailable))
}

func TestSettingsCache_RoundTrip(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()
	c := cache.NewSettingsCache(rdb, time.Minute)

	_, ok, err := c.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	view := domain.PaymentSettingsView{
		RestaurantID:    5,
		AcceptedMethods: []domain.PaymentMethod{domain.MethodCash, domain.MethodCredit},
		Verification:    domain.VerificationVerified,
		CardEnabled:     true,
	}
	require.NoError(t, c.Set(ctx, view))

	got, ok, err := c.Get(ctx, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, view, *got)

	ttl, err := rdb.TTL(ctx, "payment_settings:5").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Invalidate(ctx, 5))
	_, ok, err = c.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShiftLocker_Exclusive(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()
	l := cache.NewShiftLocker(rdb, 5*time.Second)

	unlock, err := l.Lock(ctx, 9)
	require.NoError(t, err)

	_, err = l.Lock(ctx, 9)
	assert.True(t, errors.Is(err, cache.ErrLockUnavailable))

	otherUnlock, err := l.Lock(ctx, 10)
	require.NoError(t, err)
	otherUnlock()

	unlock()
	again, err := l.Lock(ctx, 9)
	require.NoError(t, err)
	again()
}
