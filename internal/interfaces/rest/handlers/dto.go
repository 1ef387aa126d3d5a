package handlers

import (
	"time"

	"github.com/DanielPopoola/dinepay/internal/application/services"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/shopspring/decimal"
)

// Money is always rendered with two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func moneyPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money(*d)
	return &s
}

type OrderLineResponse struct {
	ID         int64                   `json:"id"`
	MenuItemID int64                   `json:"menu_item_id"`
	Variant    *domain.VariantSnapshot `json:"variant,omitempty"`
	Addons     []domain.AddonSnapshot  `json:"addons"`
	Quantity   int                     `json:"quantity"`
	UnitPrice  string                  `json:"unit_price"`
	LineTotal  string                  `json:"line_total"`
}

type OrderResponse struct {
	ID             int64                 `json:"id"`
	RestaurantID   int64                 `json:"restaurant_id"`
	Customer       domain.Customer       `json:"customer"`
	Channel        domain.Channel        `json:"channel"`
	DeliveryMethod domain.DeliveryMethod `json:"delivery_method"`
	PaymentMethod  domain.PaymentMethod  `json:"payment_method"`
	Status         domain.OrderStatus    `json:"status"`
	PaymentStatus  domain.PaymentStatus  `json:"payment_status"`
	TotalAmount    string                `json:"total_amount"`
	Lines          []OrderLineResponse   `json:"lines"`
	TransactionID  *string               `json:"transaction_id,omitempty"`
	PaidAmount     *string               `json:"paid_amount,omitempty"`
	PaidAt         *time.Time            `json:"paid_at,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		addons := l.Addons
		if addons == nil {
			addons = []domain.AddonSnapshot{}
		}
		lines = append(lines, OrderLineResponse{
			ID:         l.ID,
			MenuItemID: l.MenuItemID,
			Variant:    l.Variant,
			Addons:     addons,
			Quantity:   l.Quantity,
			UnitPrice:  money(l.UnitPriceAtOrder),
			LineTotal:  money(l.LineTotal),
		})
	}
	return OrderResponse{
		ID:             o.ID,
		RestaurantID:   o.RestaurantID,
		Customer:       o.Customer,
		Channel:        o.Channel,
		DeliveryMethod: o.DeliveryMethod,
		PaymentMethod:  o.PaymentMethod,
		Status:         o.Status,
		PaymentStatus:  o.PaymentStatus,
		TotalAmount:    money(o.TotalAmount),
		Lines:          lines,
		TransactionID:  o.TransactionID,
		PaidAmount:     moneyPtr(o.PaidAmount),
		PaidAt:         o.PaidAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

type CheckoutResponse struct {
	TargetID     int64     `json:"target_id"`
	SessionToken string    `json:"session_token"`
	RedirectURL  string    `json:"redirect_url"`
	Amount       string    `json:"amount"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func toCheckoutResponse(r *services.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		TargetID:     r.TargetID,
		SessionToken: r.SessionToken,
		RedirectURL:  r.RedirectURL,
		Amount:       money(r.Amount),
		ExpiresAt:    r.ExpiresAt,
	}
}

type ShiftResponse struct {
	ID             int64     `json:"id"`
	RestaurantID   int64     `json:"restaurant_id"`
	CashierID      int64     `json:"cashier_id"`
	OpenedAt       time.Time `json:"opened_at"`
	OpeningBalance string    `json:"opening_balance"`
}

func toShiftResponse(s *domain.CashRegisterShift) ShiftResponse {
	return ShiftResponse{
		ID:             s.ID,
		RestaurantID:   s.RestaurantID,
		CashierID:      s.CashierID,
		OpenedAt:       s.OpenedAt,
		OpeningBalance: money(s.OpeningBalance),
	}
}

type MovementResponse struct {
	ID          int64                 `json:"id"`
	ShiftID     int64                 `json:"shift_id"`
	OrderID     *int64                `json:"order_id,omitempty"`
	Type        domain.MovementType   `json:"type"`
	Method      domain.MovementMethod `json:"method"`
	Amount      string                `json:"amount"`
	Description string                `json:"description,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

func toMovementResponse(m *domain.CashMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ShiftID:     m.ShiftID,
		OrderID:     m.OrderID,
		Type:        m.Type,
		Method:      m.Method,
		Amount:      money(m.Amount),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

type SubtotalResponse struct {
	Count     int    `json:"count"`
	Total     string `json:"total"`
	CashTotal string `json:"cash_total"`
}

type ZReportResponse struct {
	ShiftID             int64                                    `json:"shift_id"`
	RestaurantID        int64                                    `json:"restaurant_id"`
	CashierID           int64                                    `json:"cashier_id"`
	OpenedAt            time.Time                                `json:"opened_at"`
	ClosedAt            *time.Time                               `json:"closed_at,omitempty"`
	OpeningBalance      string                                   `json:"opening_balance"`
	ExpectedBalance     string                                   `json:"expected_balance"`
	ClosingBalance      *string                                  `json:"closing_balance,omitempty"`
	Variance            *string                                  `json:"variance,omitempty"`
	Subtotals           map[domain.MovementType]SubtotalResponse `json:"subtotals"`
	MovementCount       int                                      `json:"movement_count"`
	UntrackedCashOrders []int64                                  `json:"untracked_cash_orders"`
	Notes               string                                   `json:"notes,omitempty"`
}

func toZReportResponse(r *domain.ZReport) ZReportResponse {
	subtotals := make(map[domain.MovementType]SubtotalResponse, len(r.Subtotals))
	for kind, sub := range r.Subtotals {
		subtotals[kind] = SubtotalResponse{
			Count:     sub.Count,
			Total:     money(sub.Total),
			CashTotal: money(sub.CashTotal),
		}
	}
	untracked := r.UntrackedCashOrders
	if untracked == nil {
		untracked = []int64{}
	}
	return ZReportResponse{
		ShiftID:             r.ShiftID,
		RestaurantID:        r.RestaurantID,
		CashierID:           r.CashierID,
		OpenedAt:            r.OpenedAt,
		ClosedAt:            r.ClosedAt,
		OpeningBalance:      money(r.OpeningBalance),
		ExpectedBalance:     money(r.ExpectedBalance),
		ClosingBalance:      moneyPtr(r.ClosingBalance),
		Variance:            moneyPtr(r.Variance),
		Subtotals:           subtotals,
		MovementCount:       r.MovementCount,
		UntrackedCashOrders: untracked,
		Notes:               r.Notes,
	}
}
