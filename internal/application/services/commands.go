package services

import (
	"time"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/shopspring/decimal"
)

type CartLine struct {
	MenuItemID int64   `json:"menu_item_id" validate:"required,gt=0"`
	VariantID  *int64  `json:"variant_id,omitempty"`
	AddonIDs   []int64 `json:"addon_ids,omitempty"`
	Quantity   int     `json:"quantity" validate:"required,gte=1"`
}

type PlaceOrderCommand struct {
	Customer       domain.Customer       `json:"customer"`
	Channel        domain.Channel        `json:"channel" validate:"required,oneof=online pos"`
	DeliveryMethod domain.DeliveryMethod `json:"delivery_method" validate:"required,oneof=delivery pickup dine_in"`
	PaymentMethod  domain.PaymentMethod  `json:"payment_method" validate:"required,oneof=cash credit online"`
	Lines          []CartLine            `json:"lines" validate:"required,min=1,dive"`
}

type OpenShiftCommand struct {
	CashierID      int64           `json:"cashier_id" validate:"required,gt=0"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

type RecordMovementCommand struct {
	Type        domain.MovementType   `json:"type" validate:"required,oneof=payment cash_in cash_out refund"`
	Method      domain.MovementMethod `json:"method" validate:"required,oneof=cash credit"`
	Amount      decimal.Decimal       `json:"amount"`
	OrderID     *int64                `json:"order_id,omitempty"`
	Description string                `json:"description" validate:"max=255"`
}

type CloseShiftCommand struct {
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Notes          string          `json:"notes" validate:"max=1000"`
}

type CheckoutResult struct {
	SessionToken string          `json:"session_token"`
	RedirectURL  string          `json:"redirect_url"`
	Amount       decimal.Decimal `json:"amount"`
	ExpiresAt    time.Time       `json:"expires_at"`
	TargetID     int64           `json:"target_id"`
}
