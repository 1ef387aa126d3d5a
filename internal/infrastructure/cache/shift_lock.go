package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var ErrLockUnavailable = errors.New("shift lock unavailable")

// ShiftLocker serializes OpenShift attempts per restaurant across instances.
// It is advisory only: the partial unique index on open shifts decides.
type ShiftLocker struct {
	locker *redislock.Client
	ttl    time.Duration
}

var _ application.ShiftLocker = (*ShiftLocker)(nil)

func NewShiftLocker(rdb *redis.Client, ttl time.Duration) *ShiftLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	l := &ShiftLocker{ttl: ttl}
	if rdb != nil {
		l.locker = redislock.New(rdb)
	}
	return l
}

func shiftLockKey(restaurantID int64) string {
	return fmt.Sprintf("shift_open:%d", restaurantID)
}

// Lock waits briefly for the lock. Any failure returns an error and the
// caller is expected to continue without it.
func (l *ShiftLocker) Lock(ctx context.Context, restaurantID int64) (func(), error) {
	if l.locker == nil {
		return nil, ErrLockUnavailable
	}

	lock, err := l.locker.Obtain(ctx, shiftLockKey(restaurantID), l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 10),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: held by another instance", ErrLockUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLockUnavailable, err)
	}

	return func() {
		// A fresh context: the request may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = lock.Release(releaseCtx)
	}, nil
}
