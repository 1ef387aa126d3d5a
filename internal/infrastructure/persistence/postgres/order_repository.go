package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `
	id, tenant_id, restaurant_id, customer_name, customer_phone, customer_address,
	channel, delivery_method, payment_method, status, payment_status, total_amount,
	transaction_id, paid_amount, paid_at, created_at, updated_at`

type orderRepository struct {
	q Executor
}

// Create inserts the order and its lines. Callers run it inside WithTx so
// the lines land atomically.
func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `
		INSERT INTO orders (
			tenant_id, restaurant_id, customer_name, customer_phone, customer_address,
			channel, delivery_method, payment_method, status, payment_status, total_amount,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.q.QueryRow(ctx, query,
		o.TenantID,
		o.RestaurantID,
		o.Customer.Name,
		o.Customer.Phone,
		o.Customer.Address,
		string(o.Channel),
		string(o.DeliveryMethod),
		string(o.PaymentMethod),
		string(o.Status),
		string(o.PaymentStatus),
		toNumeric(o.TotalAmount),
		o.CreatedAt,
		o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range o.Lines {
		line := &o.Lines[i]
		line.OrderID = o.ID
		if err := r.insertLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) insertLine(ctx context.Context, line *domain.OrderLine) error {
	addons, err := addonsJSON(line.Addons)
	if err != nil {
		return fmt.Errorf("encode addons: %w", err)
	}

	var (
		variantID    *int64
		variantName  *string
		variantDelta pgtype.Numeric
		shared       bool
	)
	if v := line.Variant; v != nil {
		variantID = &v.ID
		variantName = &v.Name
		variantDelta = toNumeric(v.PriceDelta)
		shared = v.Shared
	}

	query := `
		INSERT INTO order_lines (
			order_id, menu_item_id, variant_id, variant_name, variant_price_delta,
			variant_shared, addons, quantity, unit_price_at_order, line_total
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err = r.q.QueryRow(ctx, query,
		line.OrderID,
		line.MenuItemID,
		variantID,
		variantName,
		variantDelta,
		shared,
		addons,
		line.Quantity,
		toNumeric(line.UnitPriceAtOrder),
		toNumeric(line.LineTotal),
	).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("failed to create order line: %w", err)
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.find(ctx, id, "")
}

// FindByIDForUpdate retrieves an order with a row-level lock.
func (r *orderRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return r.find(ctx, id, "FOR UPDATE")
}

func (r *orderRepository) find(ctx context.Context, id int64, lock string) (*domain.Order, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1 AND ($2::bigint IS NULL OR tenant_id = $2)
		` + lock

	order, err := scanOrder(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		return nil, err
	}

	lines, err := r.lines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

func (r *orderRepository) lines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	query := `
		SELECT id, order_id, menu_item_id, variant_id, variant_name, variant_price_delta,
		       variant_shared, addons, quantity, unit_price_at_order, line_total
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderLine, error) {
		var m orderLineModel
		if err := row.Scan(
			&m.ID, &m.OrderID, &m.MenuItemID, &m.VariantID, &m.VariantName, &m.VariantPriceDelta,
			&m.VariantShared, &m.Addons, &m.Quantity, &m.UnitPriceAtOrder, &m.LineTotal,
		); err != nil {
			return domain.OrderLine{}, err
		}
		return toDomainLine(m)
	})
	if err != nil {
		return nil, fmt.Errorf("scan order lines: %w", err)
	}
	return lines, nil
}

// Update persists status and payment fields. Lines are immutable.
func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	query := `
		UPDATE orders
		SET status = $1, payment_status = $2, transaction_id = $3,
		    paid_amount = $4, paid_at = $5, updated_at = $6
		WHERE id = $7
	`
	tag, err := r.q.Exec(ctx, query,
		string(o.Status),
		string(o.PaymentStatus),
		o.TransactionID,
		toNullNumeric(o.PaidAmount),
		o.PaidAt,
		o.UpdatedAt,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) FindInWindow(ctx context.Context, restaurantID int64, from, to time.Time) ([]domain.ShiftOrder, error) {
	tenantID, err := tenantArg(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, payment_method, status, total_amount, created_at
		FROM orders
		WHERE restaurant_id = $1 AND created_at >= $2 AND created_at <= $3
		  AND ($4::bigint IS NULL OR tenant_id = $4)
		ORDER BY id
	`
	rows, err := r.q.Query(ctx, query, restaurantID, from, to, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query shift orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ShiftOrder, error) {
		var (
			o              domain.ShiftOrder
			method, status string
			total          pgtype.Numeric
		)
		err := row.Scan(&o.ID, &method, &status, &total, &o.CreatedAt)
		o.PaymentMethod = domain.PaymentMethod(method)
		o.Status = domain.OrderStatus(status)
		o.TotalAmount = toDecimal(total)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan shift orders: %w", err)
	}
	return orders, nil
}

// scanOrder converts a database row into a domain Order without lines.
// Returns domain.ErrOrderNotFound if the row doesn't exist.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var m orderModel
	err := row.Scan(
		&m.ID, &m.TenantID, &m.RestaurantID, &m.CustomerName, &m.CustomerPhone, &m.CustomerAddress,
		&m.Channel, &m.DeliveryMethod, &m.PaymentMethod, &m.Status, &m.PaymentStatus, &m.TotalAmount,
		&m.TransactionID, &m.PaidAmount, &m.PaidAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return toDomainOrder(m), nil
}
