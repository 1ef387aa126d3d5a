package postgres

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/jackc/pgx/v5"
)

// Store implements application.Store on PostgreSQL. The zero-depth store
// runs against the pool; the one handed to a WithTx body runs against the
// transaction.
type Store struct {
	db *DB
	q  Executor
}

var _ application.Store = (*Store)(nil)

func NewStore(db *DB) *Store {
	return &Store{db: db, q: db.Pool}
}

func (s *Store) Menu() application.MenuReader { return &menuRepository{q: s.q} }
func (s *Store) Orders() application.OrderRepository { return &orderRepository{q: s.q} }
func (s *Store) Sessions() application.SessionRepository { return &sessionRepository{q: s.q} }
func (s *Store) Shifts() application.ShiftRepository { return &shiftRepository{q: s.q} }
func (s *Store) Subscriptions() application.SubscriptionRepository {
	return &subscriptionRepository{q: s.q}
}
func (s *Store) Settings() application.SettingsRepository { return &settingsRepository{q: s.q} }

// WithTx executes fn within a database transaction. A nested call joins the
// outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx application.Store) error) error {
	if _, nested := s.q.(pgx.Tx); nested {
		return fn(s)
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		return txError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return txError(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// txError reports a lock_timeout cancellation as a request timeout; the
// row is held by a concurrent callback or shift close.
func txError(err error) error {
	if !IsLockTimeout(err) {
		return err
	}
	timeout := application.NewTimeoutError()
	timeout.Err = err
	return timeout
}
