// Package testhelpers provides an in-memory application.Store for service
// tests. Transactions are serialized and rolled back on error.
package testhelpers

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/domain"
	"github.com/DanielPopoola/dinepay/internal/tenant"
)

type state struct {
	items         map[int64]domain.MenuItem
	catalogs      map[int64]domain.Catalog
	orders        map[int64]domain.Order
	sessions      map[string]domain.PaymentSession
	shifts        map[int64]domain.CashRegisterShift
	movements     []domain.CashMovement
	plans         map[string]domain.SubscriptionPlan
	subPayments   map[int64]domain.SubscriptionPayment
	subscriptions map[int64]domain.Subscription
	settings      map[int64]domain.PaymentSettings
	nextID        int64
}

func (s *state) clone() *state {
	return &state{
		items:         maps.Clone(s.items),
		catalogs:      maps.Clone(s.catalogs),
		orders:        maps.Clone(s.orders),
		sessions:      maps.Clone(s.sessions),
		shifts:        maps.Clone(s.shifts),
		movements:     slices.Clone(s.movements),
		plans:         maps.Clone(s.plans),
		subPayments:   maps.Clone(s.subPayments),
		subscriptions: maps.Clone(s.subscriptions),
		settings:      maps.Clone(s.settings),
		nextID:        s.nextID,
	}
}

// MemStore implements application.Store in memory.
type MemStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state

	// Counters for assertions.
	OrderUpdates   int
	SessionCreates int

	// FindActionableFn overrides session lookup when set.
	FindActionableFn func(ctx context.Context, kind domain.SessionKind, targetID int64) (*domain.PaymentSession, error)
}

func NewMemStore() *MemStore {
	return &MemStore{st: &state{
		items:         map[int64]domain.MenuItem{},
		catalogs:      map[int64]domain.Catalog{},
		orders:        map[int64]domain.Order{},
		sessions:      map[string]domain.PaymentSession{},
		shifts:        map[int64]domain.CashRegisterShift{},
		plans:         map[string]domain.SubscriptionPlan{},
		subPayments:   map[int64]domain.SubscriptionPayment{},
		subscriptions: map[int64]domain.Subscription{},
		settings:      map[int64]domain.PaymentSettings{},
		nextID:        1,
	}}
}

func (m *MemStore) Menu() application.MenuReader { return memMenu{m} }
func (m *MemStore) Orders() application.OrderRepository { return memOrders{m} }
func (m *MemStore) Sessions() application.SessionRepository { return memSessions{m} }
func (m *MemStore) Shifts() application.ShiftRepository { return memShifts{m} }
func (m *MemStore) Subscriptions() application.SubscriptionRepository { return memSubscriptions{m} }
func (m *MemStore) Settings() application.SettingsRepository { return memSettings{m} }

func (m *MemStore) WithTx(ctx context.Context, fn func(tx application.Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := m.st.clone()
	m.mu.Unlock()

	if err := fn(&memTx{m}); err != nil {
		m.mu.Lock()
		m.st = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

// memTx is the store handed to a transaction body. Nested WithTx joins it.
type memTx struct{ *MemStore }

func (t *memTx) WithTx(ctx context.Context, fn func(tx application.Store) error) error {
	return fn(t)
}

func (m *MemStore) id() int64 {
	id := m.st.nextID
	m.st.nextID++
	return id
}

func visible(ctx context.Context, tenantID int64) (bool, error) {
	f, err := tenant.Filter(ctx)
	if err != nil {
		return false, err
	}
	return f == nil || *f == tenantID, nil
}

// ==== Seeding and inspection ====

func (m *MemStore) AddMenuItem(item domain.MenuItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.items[item.ID] = item
}

func (m *MemStore) SetCatalog(restaurantID int64, c domain.Catalog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.catalogs[restaurantID] = c
}

func (m *MemStore) AddSettings(s domain.PaymentSettings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.settings[s.RestaurantID] = s
}

func (m *MemStore) AddPlan(p domain.SubscriptionPlan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.plans[p.Code] = p
}

// PutOrder stores o, assigning an id when it has none.
func (m *MemStore) PutOrder(o *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.ID == 0 {
		o.ID = m.id()
	}
	m.st.orders[o.ID] = copyOrder(*o)
}

func (m *MemStore) PutSession(s *domain.PaymentSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.sessions[s.Token] = *s
}

func (m *MemStore) Order(id int64) (domain.Order, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.st.orders[id]
	return o, ok
}

func (m *MemStore) Session(token string) (domain.PaymentSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.st.sessions[token]
	return s, ok
}

func (m *MemStore) SubscriptionPayment(id int64) (domain.SubscriptionPayment, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.st.subPayments[id]
	return p, ok
}

func (m *MemStore) Subscription(restaurantID int64) (domain.Subscription, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.st.subscriptions[restaurantID]
	return s, ok
}

func (m *MemStore) AllMovements() []domain.CashMovement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.st.movements)
}

func (m *MemStore) OpenShifts(restaurantID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.st.shifts {
		if s.RestaurantID == restaurantID && s.ClosedAt == nil {
			n++
		}
	}
	return n
}

func copyOrder(o domain.Order) domain.Order {
	o.Lines = slices.Clone(o.Lines)
	return o
}

// ==== Menu ====

type memMenu struct{ m *MemStore }

func (r memMenu) FindItems(ctx context.Context, restaurantID int64, ids []int64) (map[int64]domain.MenuItem, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make(map[int64]domain.MenuItem, len(ids))
	for _, id := range ids {
		item, ok := r.m.st.items[id]
		if !ok || item.RestaurantID != restaurantID {
			continue
		}
		if ok, err := visible(ctx, item.TenantID); err != nil {
			return nil, err
		} else if ok {
			out[id] = item
		}
	}
	return out, nil
}

func (r memMenu) SharedCatalog(ctx context.Context, restaurantID int64) (domain.Catalog, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return r.m.st.catalogs[restaurantID], nil
}

// ==== Orders ====

type memOrders struct{ m *MemStore }

func (r memOrders) Create(ctx context.Context, o *domain.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o.ID = r.m.id()
	for i := range o.Lines {
		o.Lines[i].ID = r.m.id()
		o.Lines[i].OrderID = o.ID
	}
	r.m.st.orders[o.ID] = copyOrder(*o)
	return nil
}

func (r memOrders) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	o, ok := r.m.st.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	vis, err := visible(ctx, o.TenantID)
	if err != nil {
		return nil, err
	}
	if !vis {
		return nil, domain.ErrOrderNotFound
	}
	found := copyOrder(o)
	return &found, nil
}

func (r memOrders) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return r.FindByID(ctx, id)
}

func (r memOrders) Update(ctx context.Context, o *domain.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.st.orders[o.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	r.m.st.orders[o.ID] = copyOrder(*o)
	r.m.OrderUpdates++
	return nil
}

func (r memOrders) FindInWindow(ctx context.Context, restaurantID int64, from, to time.Time) ([]domain.ShiftOrder, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []domain.ShiftOrder
	for _, o := range r.m.st.orders {
		if o.RestaurantID != restaurantID || o.CreatedAt.Before(from) || o.CreatedAt.After(to) {
			continue
		}
		vis, err := visible(ctx, o.TenantID)
		if err != nil {
			return nil, err
		}
		if !vis {
			continue
		}
		out = append(out, domain.ShiftOrder{
			ID:            o.ID,
			PaymentMethod: o.PaymentMethod,
			Status:        o.Status,
			TotalAmount:   o.TotalAmount,
			CreatedAt:     o.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ==== Sessions ====

type memSessions struct{ m *MemStore }

func (r memSessions) Create(ctx context.Context, s *domain.PaymentSession) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.st.sessions[s.Token] = *s
	r.m.SessionCreates++
	return nil
}

func (r memSessions) FindByToken(ctx context.Context, token string) (*domain.PaymentSession, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	s, ok := r.m.st.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r memSessions) FindActionable(ctx context.Context, kind domain.SessionKind, targetID int64) (*domain.PaymentSession, error) {
	if r.m.FindActionableFn != nil {
		return r.m.FindActionableFn(ctx, kind, targetID)
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var latest *domain.PaymentSession
	for _, s := range r.m.st.sessions {
		if s.Kind != kind || s.TargetID != targetID || s.Status == domain.SessionCompleted {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			cp := s
			latest = &cp
		}
	}
	if latest == nil {
		return nil, domain.ErrSessionNotFound
	}
	return latest, nil
}

func (r memSessions) Update(ctx context.Context, s *domain.PaymentSession) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.st.sessions[s.Token]; !ok {
		return domain.ErrSessionNotFound
	}
	r.m.st.sessions[s.Token] = *s
	return nil
}

// ==== Shifts ====

type memShifts struct{ m *MemStore }

func (r memShifts) Open(ctx context.Context, s *domain.CashRegisterShift) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.st.shifts {
		if existing.RestaurantID == s.RestaurantID && existing.ClosedAt == nil {
			return domain.ErrShiftAlreadyOpen
		}
	}
	s.ID = r.m.id()
	r.m.st.shifts[s.ID] = *s
	return nil
}

func (r memShifts) FindOpen(ctx context.Context, restaurantID int64) (*domain.CashRegisterShift, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, s := range r.m.st.shifts {
		if s.RestaurantID == restaurantID && s.ClosedAt == nil {
			if vis, err := visible(ctx, s.TenantID); err != nil {
				return nil, err
			} else if vis {
				return &s, nil
			}
		}
	}
	return nil, domain.ErrShiftNotOpen
}

func (r memShifts) FindOpenForUpdate(ctx context.Context, restaurantID int64) (*domain.CashRegisterShift, error) {
	return r.FindOpen(ctx, restaurantID)
}

func (r memShifts) FindByID(ctx context.Context, id int64) (*domain.CashRegisterShift, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	s, ok := r.m.st.shifts[id]
	if !ok {
		return nil, domain.ErrShiftNotFound
	}
	vis, err := visible(ctx, s.TenantID)
	if err != nil {
		return nil, err
	}
	if !vis {
		return nil, domain.ErrShiftNotFound
	}
	return &s, nil
}

func (r memShifts) Close(ctx context.Context, s *domain.CashRegisterShift) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.st.shifts[s.ID] = *s
	return nil
}

func (r memShifts) AppendMovement(ctx context.Context, mv *domain.CashMovement) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s, ok := r.m.st.shifts[mv.ShiftID]; !ok || s.ClosedAt != nil {
		return domain.ErrShiftNotOpen
	}
	mv.ID = r.m.id()
	r.m.st.movements = append(r.m.st.movements, *mv)
	return nil
}

func (r memShifts) Movements(ctx context.Context, shiftID int64) ([]domain.CashMovement, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []domain.CashMovement
	for _, mv := range r.m.st.movements {
		if mv.ShiftID == shiftID {
			out = append(out, mv)
		}
	}
	return out, nil
}

// ==== Subscriptions ====

type memSubscriptions struct{ m *MemStore }

func (r memSubscriptions) FindPlan(ctx context.Context, code string) (*domain.SubscriptionPlan, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	p, ok := r.m.st.plans[code]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	return &p, nil
}

func (r memSubscriptions) CreatePayment(ctx context.Context, p *domain.SubscriptionPayment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p.ID = r.m.id()
	r.m.st.subPayments[p.ID] = *p
	return nil
}

func (r memSubscriptions) FindPaymentByID(ctx context.Context, id int64) (*domain.SubscriptionPayment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	p, ok := r.m.st.subPayments[id]
	if !ok {
		return nil, domain.ErrSubscriptionPaymentNotFound
	}
	vis, err := visible(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}
	if !vis {
		return nil, domain.ErrSubscriptionPaymentNotFound
	}
	return &p, nil
}

func (r memSubscriptions) FindPaymentByIDForUpdate(ctx context.Context, id int64) (*domain.SubscriptionPayment, error) {
	return r.FindPaymentByID(ctx, id)
}

func (r memSubscriptions) UpdatePayment(ctx context.Context, p *domain.SubscriptionPayment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.st.subPayments[p.ID] = *p
	return nil
}

func (r memSubscriptions) FindSubscription(ctx context.Context, restaurantID int64) (*domain.Subscription, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	s, ok := r.m.st.subscriptions[restaurantID]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	return &s, nil
}

func (r memSubscriptions) SaveSubscription(ctx context.Context, s *domain.Subscription) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.st.subscriptions[s.RestaurantID] = *s
	return nil
}

// ==== Settings ====

type memSettings struct{ m *MemStore }

func (r memSettings) FindByRestaurant(ctx context.Context, restaurantID int64) (*domain.PaymentSettings, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	s, ok := r.m.st.settings[restaurantID]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}
	vis, err := visible(ctx, s.TenantID)
	if err != nil {
		return nil, err
	}
	if !vis {
		return nil, domain.ErrSettingsNotFound
	}
	return &s, nil
}
