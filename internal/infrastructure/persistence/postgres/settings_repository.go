package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/jackc/pgx/v5"
)

type settingsRepository struct {
	q Executor
}

func (r *settingsRepository) FindByRestaurant(ctx context.Context, restaurantID int64) (*domain.PaymentSettings, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}

	var (
		s      domain.PaymentSettings
		status string
	)
	err = r.q.QueryRow(ctx, `
		SELECT tenant_id, restaurant_id, accepts_cash, accepts_card, verification_status,
		       merchant_id, terminal_id, api_key, referer
		FROM payment_settings
		WHERE restaurant_id = $1 AND ($2::bigint IS NULL OR tenant_id = $2)
	`, restaurantID, tenantID).Scan(
		&s.TenantID, &s.RestaurantID, &s.AcceptsCash, &s.AcceptsCard, &status,
		&s.Terminal.MerchantID, &s.Terminal.TerminalID, &s.Terminal.APIKey, &s.Terminal.Referer,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to scan payment settings: %w", err)
	}
	s.Verification = domain.VerificationStatus(status)
	return &s, nil
}
