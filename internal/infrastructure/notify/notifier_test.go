package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application/mocks"
	"github.com/DanielPopoola/dinepay/internal/infrastructure/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordedPublish struct {
	exchange string
	key      string
	body     []byte
}

type fakePublisher struct {
	mu    sync.Mutex
	calls []recordedPublish
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, exchange, key string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedPublish{exchange: exchange, key: key, body: body})
	return f.err
}

func TestAMQPNotifier_Notify(t *testing.T) {
	pub := &fakePublisher{}
	n := notify.NewAMQPNotifier(pub, "dinepay.notifications")

	err := n.Notify(context.Background(), 7, "Order paid", "Order #12 was paid", map[string]string{"order_id": "12"})
	require.NoError(t, err)

	require.Len(t, pub.calls, 1)
	call := pub.calls[0]
	assert.Equal(t, "dinepay.notifications", call.exchange)
	assert.Equal(t, "tenant.7.notification", call.key)

	var msg notify.Message
	require.NoError(t, json.Unmarshal(call.body, &msg))
	assert.Equal(t, int64(7), msg.TenantID)
	assert.Equal(t, "Order paid", msg.Title)
	assert.Equal(t, "12", msg.Data["order_id"])
	assert.False(t, msg.SentAt.IsZero())
}

func TestAMQPNotifier_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	n := notify.NewAMQPNotifier(pub, "x")

	err := n.Notify(context.Background(), 1, "t", "b", nil)
	assert.ErrorContains(t, err, "channel closed")
}

func TestAsyncNotifier_SwallowsFailures(t *testing.T) {
	next := mocks.NewMockNotifier(t)
	next.EXPECT().
		Notify(mock.Anything, int64(3), "Order paid", "body", mock.Anything).
		Return(errors.New("broker down")).
		Once()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	async := notify.NewAsyncNotifier(next, time.Second, logger)

	err := async.Notify(context.Background(), 3, "Order paid", "body", nil)
	assert.NoError(t, err)
	async.Wait()
}

func TestAsyncNotifier_OutlivesCallerContext(t *testing.T) {
	pub := &fakePublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	async := notify.NewAsyncNotifier(notify.NewAMQPNotifier(pub, "x"), time.Second, logger)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, async.Notify(ctx, 1, "t", "b", nil))
	cancel()
	async.Wait()

	assert.Len(t, pub.calls, 1)
}
