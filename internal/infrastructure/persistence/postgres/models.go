package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// orderModel mirrors the orders table. Enumerations travel as plain text.
type orderModel struct {
	ID              int64
	TenantID        int64
	RestaurantID    int64
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Channel         string
	DeliveryMethod  string
	PaymentMethod   string
	Status          string
	PaymentStatus   string
	TotalAmount     pgtype.Numeric
	TransactionID   *string
	PaidAmount      pgtype.Numeric
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type orderLineModel struct {
	ID                int64
	OrderID           int64
	MenuItemID        int64
	VariantID         *int64
	VariantName       *string
	VariantPriceDelta pgtype.Numeric
	VariantShared     bool
	Addons            []byte
	Quantity          int
	UnitPriceAtOrder  pgtype.Numeric
	LineTotal         pgtype.Numeric
}

type sessionModel struct {
	Token         string
	Kind          string
	TargetID      int64
	TenantID      int64
	RestaurantID  int64
	Amount        pgtype.Numeric
	Status        string
	ExpiresAt     time.Time
	TransactionID *string
	ErrorMessage  *string
	CompletedAt   *time.Time
	CreatedAt     time.Time
}

type shiftModel struct {
	ID              int64
	TenantID        int64
	RestaurantID    int64
	CashierID       int64
	OpenedAt        time.Time
	OpeningBalance  pgtype.Numeric
	ClosedAt        *time.Time
	ClosingBalance  pgtype.Numeric
	ExpectedBalance pgtype.Numeric
	Notes           string
}

type subscriptionPaymentModel struct {
	ID            int64
	TenantID      int64
	RestaurantID  int64
	PlanCode      string
	Months        int
	AICredits     int
	Amount        pgtype.Numeric
	PaymentStatus string
	TransactionID *string
	PaidAmount    pgtype.Numeric
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
