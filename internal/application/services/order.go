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

type OrderService struct {
	store    application.Store
	notifier application.Notifier
	logger   *slog.Logger
}

func NewOrderService(store application.Store, notifier application.Notifier, logger *slog.Logger) *OrderService {
	return &OrderService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// PlaceOrder prices the cart and stores the order with its lines in one
// transaction. Point-of-sale orders also land in the open shift's ledger.
func (s *OrderService) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (_ *domain.Order, err error) {
	scope, err := tenant.MustRestaurant(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "order.place",
		attribute.Int64("restaurant_id", scope.RestaurantID),
		attribute.Int("lines", len(cmd.Lines)),
	)
	defer func() { endSpan(span, err) }()

	priced, err := s.priceCart(ctx, scope.RestaurantID, cmd.Lines)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(scope.TenantID, scope.RestaurantID, cmd.Customer,
		cmd.Channel, cmd.DeliveryMethod, cmd.PaymentMethod, priced)
	if err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx application.Store) error {
		if err := tx.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if order.Channel != domain.ChannelPOS {
			return nil
		}
		return s.recordPOSPayment(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		"order_id", order.ID,
		"restaurant_id", order.RestaurantID,
		"channel", order.Channel,
		"total", order.TotalAmount.StringFixed(2),
	)

	s.notify(ctx, order.TenantID, "New order", fmt.Sprintf("Order #%d received", order.ID), map[string]string{
		"type":     "order_created",
		"order_id": strconv.FormatInt(order.ID, 10),
	})
	return order, nil
}

func (s *OrderService) priceCart(ctx context.Context, restaurantID int64, lines []CartLine) ([]domain.PricedLine, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.MenuItemID)
	}
	items, err := s.store.Menu().FindItems(ctx, restaurantID, ids)
	if err != nil {
		return nil, fmt.Errorf("load menu items: %w", err)
	}

	var shared *domain.Catalog
	priced := make([]domain.PricedLine, 0, len(lines))
	for i, l := range lines {
		item, ok := items[l.MenuItemID]
		if !ok {
			return nil, domain.NewSelectionError(domain.ReasonItemUnavailable).AtLine(i)
		}
		if shared == nil && (item.UsesVariantSet || item.UsesAddonSet) {
			catalog, err := s.store.Menu().SharedCatalog(ctx, restaurantID)
			if err != nil {
				return nil, fmt.Errorf("load shared catalog: %w", err)
			}
			shared = &catalog
		}
		var catalog domain.Catalog
		if shared != nil {
			catalog = *shared
		}

		line, err := domain.PriceLine(item, catalog, domain.Selection{
			VariantID: l.VariantID,
			AddonIDs:  l.AddonIDs,
			Quantity:  l.Quantity,
		})
		if err != nil {
			var selErr *domain.SelectionError
			if errors.As(err, &selErr) {
				return nil, selErr.AtLine(i)
			}
			return nil, err
		}
		priced = append(priced, line)
	}
	return priced, nil
}

// recordPOSPayment holds the open shift row until commit so a concurrent
// CloseShift either counts this movement or finds no open shift to close.
func (s *OrderService) recordPOSPayment(ctx context.Context, tx application.Store, order *domain.Order) error {
	shift, err := tx.Shifts().FindOpenForUpdate(ctx, order.RestaurantID)
	if errors.Is(err, domain.ErrShiftNotOpen) {
		s.logger.Warn("pos order placed without an open shift", "order_id", order.ID, "restaurant_id", order.RestaurantID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("find open shift: %w", err)
	}

	orderID := order.ID
	movement, err := domain.NewCashMovement(shift.ID, &orderID, domain.MovementPayment,
		domain.TenderFor(order.PaymentMethod), order.TotalAmount,
		fmt.Sprintf("Order #%d", order.ID), time.Now())
	if err != nil {
		return err
	}
	if err := tx.Shifts().AppendMovement(ctx, movement); err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.store.Orders().FindByID(ctx, id)
}

// AdvanceStatus moves the order to target, which must be the next step of
// the fulfilment flow or cancelled.
func (s *OrderService) AdvanceStatus(ctx context.Context, id int64, target domain.OrderStatus) (*domain.Order, error) {
	var order *domain.Order
	err := s.store.WithTx(ctx, func(tx application.Store) error {
		o, err := tx.Orders().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := o.AdvanceTo(target); err != nil {
			return err
		}
		order = o
		return tx.Orders().Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status changed", "order_id", id, "status", order.Status)
	s.notify(ctx, order.TenantID, "Order update", fmt.Sprintf("Order #%d is %s", order.ID, order.Status), map[string]string{
		"type":     "order_status",
		"order_id": strconv.FormatInt(order.ID, 10),
		"status":   string(order.Status),
	})
	return order, nil
}

func (s *OrderService) Cancel(ctx context.Context, id int64) (*domain.Order, error) {
	return s.AdvanceStatus(ctx, id, domain.OrderCancelled)
}

func (s *OrderService) notify(ctx context.Context, tenantID int64, title, body string, data map[string]string) {
	notify(ctx, s.notifier, s.logger, tenantID, title, body, data)
}

// notify never fails the caller.
func notify(ctx context.Context, n application.Notifier, logger *slog.Logger, tenantID int64, title, body string, data map[string]string) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, tenantID, title, body, data); err != nil {
		logger.Warn("notification failed", "tenant_id", tenantID, "title", title, "error", err)
	}
}
