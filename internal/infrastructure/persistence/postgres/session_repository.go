package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `
	token, kind, target_id, tenant_id, restaurant_id, amount, status, expires_at,
	transaction_id, error_message, completed_at, created_at`

type sessionRepository struct {
	q Executor
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.PaymentSession) error {
	query := `
		INSERT INTO payment_sessions (
			token, kind, target_id, tenant_id, restaurant_id, amount, status, expires_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.q.Exec(ctx, query,
		s.Token,
		string(s.Kind),
		s.TargetID,
		s.TenantID,
		s.RestaurantID,
		toNumeric(s.Amount),
		string(s.Status),
		s.ExpiresAt,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindByToken(ctx context.Context, token string) (*domain.PaymentSession, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + sessionColumns + `
		FROM payment_sessions
		WHERE token = $1 AND ($2::bigint IS NULL OR tenant_id = $2)
	`
	return scanSession(r.q.QueryRow(ctx, query, token, tenantID))
}

func (r *sessionRepository) FindActionable(ctx context.Context, kind domain.SessionKind, targetID int64) (*domain.PaymentSession, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + sessionColumns + `
		FROM payment_sessions
		WHERE kind = $1 AND target_id = $2 AND status <> 'completed'
		  AND ($3::bigint IS NULL OR tenant_id = $3)
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE
	`
	return scanSession(r.q.QueryRow(ctx, query, string(kind), targetID, tenantID))
}

func (r *sessionRepository) Update(ctx context.Context, s *domain.PaymentSession) error {
	query := `
		UPDATE payment_sessions
		SET status = $1, transaction_id = $2, error_message = $3, completed_at = $4
		WHERE token = $5
	`
	tag, err := r.q.Exec(ctx, query,
		string(s.Status),
		s.TransactionID,
		s.ErrorMessage,
		s.CompletedAt,
		s.Token,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func scanSession(row pgx.Row) (*domain.PaymentSession, error) {
	var m sessionModel
	err := row.Scan(
		&m.Token, &m.Kind, &m.TargetID, &m.TenantID, &m.RestaurantID, &m.Amount, &m.Status, &m.ExpiresAt,
		&m.TransactionID, &m.ErrorMessage, &m.CompletedAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to scan payment session: %w", err)
	}
	return toDomainSession(m), nil
}
