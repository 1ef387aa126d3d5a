// Package notify delivers push notifications for order and subscription
// events through RabbitMQ. Delivery is best-effort.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application"
)

// Publisher is the part of Client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte) error
}

// Message is the wire shape consumed by the push-delivery worker.
type Message struct {
	TenantID int64             `json:"tenant_id"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	SentAt   time.Time         `json:"sent_at"`
}

type AMQPNotifier struct {
	publisher Publisher
	exchange  string
	now       func() time.Time
}

var _ application.Notifier = (*AMQPNotifier)(nil)

func NewAMQPNotifier(publisher Publisher, exchange string) *AMQPNotifier {
	return &AMQPNotifier{publisher: publisher, exchange: exchange, now: time.Now}
}

// Notify publishes under routing key "tenant.<id>.notification".
func (n *AMQPNotifier) Notify(ctx context.Context, tenantID int64, title, body string, data map[string]string) error {
	payload, err := json.Marshal(Message{
		TenantID: tenantID,
		Title:    title,
		Body:     body,
		Data:     data,
		SentAt:   n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	key := fmt.Sprintf("tenant.%d.notification", tenantID)
	if err := n.publisher.Publish(ctx, n.exchange, key, payload); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// AsyncNotifier hands each notification to a goroutine so the caller never
// waits on the broker. Failures are logged and dropped.
type AsyncNotifier struct {
	next    application.Notifier
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

var _ application.Notifier = (*AsyncNotifier)(nil)

func NewAsyncNotifier(next application.Notifier, timeout time.Duration, logger *slog.Logger) *AsyncNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AsyncNotifier{next: next, timeout: timeout, logger: logger}
}

func (a *AsyncNotifier) Notify(ctx context.Context, tenantID int64, title, body string, data map[string]string) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		if err := a.next.Notify(ctx, tenantID, title, body, data); err != nil {
			a.logger.Warn("notification dropped",
				"tenant_id", tenantID,
				"title", title,
				"error", err,
			)
		}
	}()
	return nil
}

// Wait blocks until in-flight notifications finish. Called on shutdown.
func (a *AsyncNotifier) Wait() {
	a.wg.Wait()
}
