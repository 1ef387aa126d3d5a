package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/tenant"
	"go.opentelemetry.io/otel/attribute"
)

// CurrentShift selects the open shift in report lookups.
const CurrentShift = "current"

type ShiftService struct {
	store  application.Store
	locker application.ShiftLocker
	logger *slog.Logger
	now    func() time.Time
}

func NewShiftService(store application.Store, locker application.ShiftLocker, logger *slog.Logger) *ShiftService {
	return &ShiftService{
		store:  store,
		locker: locker,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source.
func (s *ShiftService) WithClock(now func() time.Time) *ShiftService {
	s.now = now
	return s
}

// OpenShift opens the restaurant's drawer. Find-or-create runs in one
// transaction and the partial unique index decides concurrent races.
func (s *ShiftService) OpenShift(ctx context.Context, cmd OpenShiftCommand) (*domain.CashRegisterShift, error) {
	scope, err := tenant.MustRestaurant(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.lock(ctx, scope.RestaurantID)
	defer unlock()

	shift, err := domain.NewShift(scope.TenantID, scope.RestaurantID, cmd.CashierID, cmd.OpeningBalance, s.now())
	if err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx application.Store) error {
		existing, err := tx.Shifts().FindOpen(ctx, scope.RestaurantID)
		if err == nil {
			return fmt.Errorf("%w: shift %d", domain.ErrShiftAlreadyOpen, existing.ID)
		}
		if !errors.Is(err, domain.ErrShiftNotOpen) {
			return err
		}
		return tx.Shifts().Open(ctx, shift)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shift opened",
		"shift_id", shift.ID,
		"restaurant_id", shift.RestaurantID,
		"cashier_id", shift.CashierID,
		"opening_balance", shift.OpeningBalance.StringFixed(2),
	)
	return shift, nil
}

// lock takes the advisory lock when available and proceeds without it
// otherwise.
func (s *ShiftService) lock(ctx context.Context, restaurantID int64) func() {
	if s.locker == nil {
		return func() {}
	}
	unlock, err := s.locker.Lock(ctx, restaurantID)
	if err != nil {
		s.logger.Warn("shift lock not obtained, relying on database constraint",
			"restaurant_id", restaurantID, "error", err)
		return func() {}
	}
	return unlock
}

func (s *ShiftService) RecordMovement(ctx context.Context, cmd RecordMovementCommand) (*domain.CashMovement, error) {
	scope, err := tenant.MustRestaurant(ctx)
	if err != nil {
		return nil, err
	}

	var movement *domain.CashMovement
	err = s.store.WithTx(ctx, func(tx application.Store) error {
		shift, err := tx.Shifts().FindOpenForUpdate(ctx, scope.RestaurantID)
		if err != nil {
			return err
		}
		m, err := domain.NewCashMovement(shift.ID, cmd.OrderID, cmd.Type, cmd.Method, cmd.Amount, cmd.Description, s.now())
		if err != nil {
			return err
		}
		if err := tx.Shifts().AppendMovement(ctx, m); err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cash movement recorded",
		"shift_id", movement.ShiftID,
		"movement_id", movement.ID,
		"type", movement.Type,
		"method", movement.Method,
		"amount", movement.Amount.StringFixed(2),
	)
	return movement, nil
}

// CloseShift counts the drawer, stores the expected balance and returns the
// Z-report. Untracked cash orders are reported, never fatal.
func (s *ShiftService) CloseShift(ctx context.Context, cmd CloseShiftCommand) (_ *domain.ZReport, err error) {
	scope, err := tenant.MustRestaurant(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "shift.close", attribute.Int64("restaurant_id", scope.RestaurantID))
	defer func() { endSpan(span, err) }()

	var report domain.ZReport
	err = s.store.WithTx(ctx, func(tx application.Store) error {
		shift, err := tx.Shifts().FindOpenForUpdate(ctx, scope.RestaurantID)
		if err != nil {
			return err
		}
		movements, err := tx.Shifts().Movements(ctx, shift.ID)
		if err != nil {
			return err
		}

		closedAt := s.now()
		orders, err := tx.Orders().FindInWindow(tenant.WithoutScope(ctx), shift.RestaurantID, shift.OpenedAt, closedAt)
		if err != nil {
			return fmt.Errorf("load shift orders: %w", err)
		}

		expected := domain.ExpectedBalance(shift.OpeningBalance, movements)
		if err := shift.Close(cmd.ClosingBalance, expected, cmd.Notes, closedAt); err != nil {
			return err
		}
		if err := tx.Shifts().Close(ctx, shift); err != nil {
			return err
		}
		report = domain.BuildZReport(shift, movements, orders)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(report.UntrackedCashOrders) > 0 {
		s.logger.Warn("untracked cash orders in shift",
			"shift_id", report.ShiftID,
			"order_ids", report.UntrackedCashOrders,
		)
	}
	s.logger.Info("shift closed",
		"shift_id", report.ShiftID,
		"expected_balance", report.ExpectedBalance.StringFixed(2),
		"variance", report.Variance.StringFixed(2),
	)
	return &report, nil
}

// GetReport builds the Z-report for a shift id or for the open shift. An
// open shift's report is live.
func (s *ShiftService) GetReport(ctx context.Context, ref string) (*domain.ZReport, error) {
	scope, err := tenant.MustRestaurant(ctx)
	if err != nil {
		return nil, err
	}

	var shift *domain.CashRegisterShift
	if ref == CurrentShift {
		shift, err = s.store.Shifts().FindOpen(ctx, scope.RestaurantID)
	} else {
		id, perr := strconv.ParseInt(ref, 10, 64)
		if perr != nil || id <= 0 {
			return nil, fmt.Errorf("%w: shift id %q", domain.ErrShiftNotFound, ref)
		}
		shift, err = s.store.Shifts().FindByID(ctx, id)
		if err == nil && shift.RestaurantID != scope.RestaurantID {
			return nil, fmt.Errorf("%w: shift id %d", domain.ErrShiftNotFound, id)
		}
	}
	if err != nil {
		return nil, err
	}

	movements, err := s.store.Shifts().Movements(ctx, shift.ID)
	if err != nil {
		return nil, err
	}
	end := s.now()
	if shift.ClosedAt != nil {
		end = *shift.ClosedAt
	}
	orders, err := s.store.Orders().FindInWindow(ctx, shift.RestaurantID, shift.OpenedAt, end)
	if err != nil {
		return nil, err
	}

	report := domain.BuildZReport(shift, movements, orders)
	return &report, nil
}
