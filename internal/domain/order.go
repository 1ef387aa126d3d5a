package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderReceived   OrderStatus = "received"
	OrderPreparing  OrderStatus = "preparing"
	OrderReady      OrderStatus = "ready"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// PaymentStatus is shared by orders and subscription payments.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type Channel string

const (
	ChannelOnline Channel = "online"
	ChannelPOS    Channel = "pos"
)

type DeliveryMethod string

const (
	DeliveryDelivery DeliveryMethod = "delivery"
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDineIn   DeliveryMethod = "dine_in"
)

// PaymentMethod is how the customer settles the order. Online means card
// through the hosted gateway; credit is a card swiped at the counter.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodCredit PaymentMethod = "credit"
	MethodOnline PaymentMethod = "online"
)

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

type OrderLine struct {
	ID         int64
	OrderID    int64
	MenuItemID int64
	Variant    *VariantSnapshot
	Addons     []AddonSnapshot
	Quantity   int
	// UnitPriceAtOrder never changes once the line is stored.
	UnitPriceAtOrder decimal.Decimal
	LineTotal        decimal.Decimal
}

type Order struct {
	ID             int64
	TenantID       int64
	RestaurantID   int64
	Customer       Customer
	Channel        Channel
	DeliveryMethod DeliveryMethod
	PaymentMethod  PaymentMethod
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	TotalAmount    decimal.Decimal
	Lines          []OrderLine

	TransactionID *string
	PaidAmount    *decimal.Decimal
	PaidAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

var orderFlow = []OrderStatus{OrderReceived, OrderPreparing, OrderReady, OrderDelivering, OrderDelivered}

func NewOrder(
	tenantID, restaurantID int64,
	customer Customer,
	channel Channel,
	delivery DeliveryMethod,
	method PaymentMethod,
	lines []PricedLine,
) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if restaurantID == 0 {
		return nil, NewMissingRequiredFieldError("restaurant_id")
	}
	if err := checkMethod(channel, method); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &Order{
		TenantID:       tenantID,
		RestaurantID:   restaurantID,
		Customer:       customer,
		Channel:        channel,
		DeliveryMethod: delivery,
		PaymentMethod:  method,
		Status:         OrderReceived,
		PaymentStatus:  PaymentUnpaid,
		TotalAmount:    decimal.Zero,
		Lines:          make([]OrderLine, 0, len(lines)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, l := range lines {
		order.Lines = append(order.Lines, OrderLine{
			MenuItemID:       l.MenuItemID,
			Variant:          l.Variant,
			Addons:           l.Addons,
			Quantity:         l.Quantity,
			UnitPriceAtOrder: l.UnitPrice,
			LineTotal:        l.LineTotal,
		})
		order.TotalAmount = order.TotalAmount.Add(l.LineTotal)
	}
	order.TotalAmount = Round2(order.TotalAmount)
	return order, nil
}

func checkMethod(channel Channel, method PaymentMethod) error {
	switch channel {
	case ChannelPOS:
		if method == MethodCash || method == MethodCredit {
			return nil
		}
	case ChannelOnline:
		if method == MethodCash || method == MethodOnline {
			return nil
		}
	default:
		return fmt.Errorf("%w: unknown channel %q", ErrInvalidPaymentMethod, channel)
	}
	return fmt.Errorf("%w: %s via %s", ErrInvalidPaymentMethod, method, channel)
}

// IsTerminal reports whether the fulfilment status can no longer change.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderDelivered || o.Status == OrderCancelled
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentPaid
}

// AdvanceTo moves the order one step forward along the fulfilment flow.
func (o *Order) AdvanceTo(target OrderStatus) error {
	if target == OrderCancelled {
		return o.Cancel()
	}
	cur := slices.Index(orderFlow, o.Status)
	next := slices.Index(orderFlow, target)
	if cur < 0 || next != cur+1 {
		return NewInvalidTransitionError(string(o.Status), string(target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) Cancel() error {
	if o.IsTerminal() {
		return NewInvalidTransitionError(string(o.Status), string(OrderCancelled))
	}
	o.Status = OrderCancelled
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) MarkPaymentPending() error {
	if o.Status == OrderCancelled {
		return NewInvalidTransitionError(string(o.Status), string(PaymentPending))
	}
	return o.transitionPayment(PaymentPending)
}

func (o *Order) MarkPaymentFailed() error {
	return o.transitionPayment(PaymentFailed)
}

// MarkPaid records the settlement. It is the only way to reach PaymentPaid.
func (o *Order) MarkPaid(transactionID string, amount decimal.Decimal, at time.Time) error {
	if err := o.transitionPayment(PaymentPaid); err != nil {
		return err
	}
	o.TransactionID = &transactionID
	o.PaidAmount = &amount
	o.PaidAt = &at
	return nil
}

func (o *Order) Tenant() int64 { return o.TenantID }

func (o *Order) transitionPayment(target PaymentStatus) error {
	if err := canTransitionPayment(o.PaymentStatus, target); err != nil {
		return err
	}
	o.PaymentStatus = target
	o.UpdatedAt = time.Now()
	return nil
}

func canTransitionPayment(current, target PaymentStatus) error {
	switch current {
	case PaymentUnpaid:
		return allowPayment(current, target, PaymentPending, PaymentPaid, PaymentFailed)
	case PaymentPending:
		return allowPayment(current, target, PaymentPending, PaymentPaid, PaymentFailed)
	case PaymentFailed:
		return allowPayment(current, target, PaymentPending, PaymentPaid, PaymentFailed)
	}
	return NewInvalidTransitionError(string(current), string(target))
}

func allowPayment(current, target PaymentStatus, allowed ...PaymentStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(string(current), string(target))
}
