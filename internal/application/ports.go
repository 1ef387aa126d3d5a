package application

import (
	"context"
	"time"

	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/shopspring/decimal"
)

// MenuReader is the read-only view of menu configuration needed for pricing.
type MenuReader interface {
	FindItems(ctx context.Context, restaurantID int64, ids []int64) (map[int64]domain.MenuItem, error)
	SharedCatalog(ctx context.Context, restaurantID int64) (domain.Catalog, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// FindByIDForUpdate locks the order row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	FindInWindow(ctx context.Context, restaurantID int64, from, to time.Time) ([]domain.ShiftOrder, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.PaymentSession) error
	FindByToken(ctx context.Context, token string) (*domain.PaymentSession, error)
	// FindActionable returns the newest session for the target that is not
	// completed, or domain.ErrSessionNotFound.
	FindActionable(ctx context.Context, kind domain.SessionKind, targetID int64) (*domain.PaymentSession, error)
	Update(ctx context.Context, session *domain.PaymentSession) error
}

type ShiftRepository interface {
	// Open inserts the shift; a concurrent open shift yields domain.ErrShiftAlreadyOpen.
	Open(ctx context.Context, shift *domain.CashRegisterShift) error
	FindOpen(ctx context.Context, restaurantID int64) (*domain.CashRegisterShift, error)
	FindOpenForUpdate(ctx context.Context, restaurantID int64) (*domain.CashRegisterShift, error)
	FindByID(ctx context.Context, id int64) (*domain.CashRegisterShift, error)
	Close(ctx context.Context, shift *domain.CashRegisterShift) error
	AppendMovement(ctx context.Context, movement *domain.CashMovement) error
	Movements(ctx context.Context, shiftID int64) ([]domain.CashMovement, error)
}

type SubscriptionRepository interface {
	FindPlan(ctx context.Context, code string) (*domain.SubscriptionPlan, error)
	CreatePayment(ctx context.Context, payment *domain.SubscriptionPayment) error
	FindPaymentByID(ctx context.Context, id int64) (*domain.SubscriptionPayment, error)
	FindPaymentByIDForUpdate(ctx context.Context, id int64) (*domain.SubscriptionPayment, error)
	UpdatePayment(ctx context.Context, payment *domain.SubscriptionPayment) error
	FindSubscription(ctx context.Context, restaurantID int64) (*domain.Subscription, error)
	SaveSubscription(ctx context.Context, sub *domain.Subscription) error
}

type SettingsRepository interface {
	FindByRestaurant(ctx context.Context, restaurantID int64) (*domain.PaymentSettings, error)
}

// Store groups the repositories. WithTx runs fn against repositories bound
// to one transaction, committing when fn returns nil.
type Store interface {
	Menu() MenuReader
	Orders() OrderRepository
	Sessions() SessionRepository
	Shifts() ShiftRepository
	Subscriptions() SubscriptionRepository
	Settings() SettingsRepository
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

// PaymentRequest is everything the gateway needs to sign one payment.
type PaymentRequest struct {
	Terminal     domain.Terminal
	Amount       decimal.Decimal
	Reference    int64
	SessionToken string
	Description  string
	SuccessURL   string
	ErrorURL     string
}

type SignedPayment struct {
	Signature   string
	RedirectURL string
}

// Gateway signs payment parameters server-to-server. Calls are never retried.
type Gateway interface {
	Sign(ctx context.Context, req PaymentRequest) (*SignedPayment, error)
}

// Notifier dispatches a push notification. Delivery is best-effort.
type Notifier interface {
	Notify(ctx context.Context, tenantID int64, title, body string, data map[string]string) error
}

type SettingsCache interface {
	Get(ctx context.Context, restaurantID int64) (*domain.PaymentSettingsView, bool, error)
	Set(ctx context.Context, view domain.PaymentSettingsView) error
}

// ShiftLocker is an advisory cross-instance lock. The database index remains
// the guarantee of shift exclusivity.
type ShiftLocker interface {
	Lock(ctx context.Context, restaurantID int64) (unlock func(), err error)
}
