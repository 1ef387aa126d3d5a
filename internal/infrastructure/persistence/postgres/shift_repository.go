package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const shiftColumns = `
	id, tenant_id, restaurant_id, cashier_id, opened_at, opening_balance,
	closed_at, closing_balance, expected_balance, notes`

type shiftRepository struct {
	q Executor
}

// Open inserts a new shift. uq_cash_register_shifts_open turns a concurrent
// second open into domain.ErrShiftAlreadyOpen.
func (r *shiftRepository) Open(ctx context.Context, s *domain.CashRegisterShift) error {
	query := `
		INSERT INTO cash_register_shifts (tenant_id, restaurant_id, cashier_id, opened_at, opening_balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.q.QueryRow(ctx, query,
		s.TenantID,
		s.RestaurantID,
		s.CashierID,
		s.OpenedAt,
		toNumeric(s.OpeningBalance),
	).Scan(&s.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: restaurant %d", domain.ErrShiftAlreadyOpen, s.RestaurantID)
		}
		return fmt.Errorf("failed to open shift: %w", err)
	}
	return nil
}

func (r *shiftRepository) FindOpen(ctx context.Context, restaurantID int64) (*domain.CashRegisterShift, error) {
	return r.findOpen(ctx, restaurantID, "")
}

func (r *shiftRepository) FindOpenForUpdate(ctx context.Context, restaurantID int64) (*domain.CashRegisterShift, error) {
	return r.findOpen(ctx, restaurantID, "FOR UPDATE")
}

func (r *shiftRepository) findOpen(ctx context.Context, restaurantID int64, lock string) (*domain.CashRegisterShift, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + shiftColumns + `
		FROM cash_register_shifts
		WHERE restaurant_id = $1 AND closed_at IS NULL
		  AND ($2::bigint IS NULL OR tenant_id = $2)
		` + lock
	shift, err := scanShift(r.q.QueryRow(ctx, query, restaurantID, tenantID))
	if errors.Is(err, domain.ErrShiftNotFound) {
		return nil, domain.ErrShiftNotOpen
	}
	return shift, err
}

func (r *shiftRepository) FindByID(ctx context.Context, id int64) (*domain.CashRegisterShift, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + shiftColumns + `
		FROM cash_register_shifts
		WHERE id = $1 AND ($2::bigint IS NULL OR tenant_id = $2)
	`
	return scanShift(r.q.QueryRow(ctx, query, id, tenantID))
}

// Close writes the counted and expected balances. Only an open row matches.
func (r *shiftRepository) Close(ctx context.Context, s *domain.CashRegisterShift) error {
	query := `
		UPDATE cash_register_shifts
		SET closed_at = $1, closing_balance = $2, expected_balance = $3, notes = $4
		WHERE id = $5 AND closed_at IS NULL
	`
	tag, err := r.q.Exec(ctx, query,
		s.ClosedAt,
		toNullNumeric(s.ClosingBalance),
		toNullNumeric(s.ExpectedBalance),
		s.Notes,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to close shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrShiftClosed
	}
	return nil
}

// AppendMovement inserts a ledger row. Movements are never updated, and a
// closed shift takes none: its expected balance is already final.
func (r *shiftRepository) AppendMovement(ctx context.Context, m *domain.CashMovement) error {
	query := `
		INSERT INTO cash_movements (shift_id, order_id, type, method, amount, description, created_at)
		SELECT s.id, $2::bigint, $3::varchar, $4::varchar, $5::numeric, $6::text, $7::timestamptz
		FROM cash_register_shifts s
		WHERE s.id = $1 AND s.closed_at IS NULL
		RETURNING id
	`
	err := r.q.QueryRow(ctx, query,
		m.ShiftID,
		m.OrderID,
		string(m.Type),
		string(m.Method),
		toNumeric(m.Amount),
		m.Description,
		m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: shift %d", domain.ErrShiftNotOpen, m.ShiftID)
		}
		return fmt.Errorf("failed to append cash movement: %w", err)
	}
	return nil
}

func (r *shiftRepository) Movements(ctx context.Context, shiftID int64) ([]domain.CashMovement, error) {
	query := `
		SELECT id, shift_id, order_id, type, method, amount, description, created_at
		FROM cash_movements
		WHERE shift_id = $1
		ORDER BY id
	`
	rows, err := r.q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("query cash movements: %w", err)
	}

	movements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CashMovement, error) {
		var (
			m            domain.CashMovement
			kind, method string
			amount       pgtype.Numeric
		)
		err := row.Scan(&m.ID, &m.ShiftID, &m.OrderID, &kind, &method, &amount, &m.Description, &m.CreatedAt)
		m.Type = domain.MovementType(kind)
		m.Method = domain.MovementMethod(method)
		m.Amount = toDecimal(amount)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan cash movements: %w", err)
	}
	return movements, nil
}

func scanShift(row pgx.Row) (*domain.CashRegisterShift, error) {
	var m shiftModel
	err := row.Scan(
		&m.ID, &m.TenantID, &m.RestaurantID, &m.CashierID, &m.OpenedAt, &m.OpeningBalance,
		&m.ClosedAt, &m.ClosingBalance, &m.ExpectedBalance, &m.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to scan shift: %w", err)
	}
	return toDomainShift(m), nil
}
