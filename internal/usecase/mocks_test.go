package usecase

import (
	"context"
	"io"
	"sort"
	"sync"

	"telegram-smm-storefront/internal/domain"
	"telegram-smm-storefront/internal/domain/model"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// memSessionStore is a small in-memory SessionStore used by unit tests.
type memSessionStore struct {
	mu     sync.RWMutex
	store  map[int64]*model.Session
	getErr error // simulate store failures
	setErr error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{store: make(map[int64]*model.Session)}
}

func (m *memSessionStore) Get(_ context.Context, tgID int64) (*model.Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[tgID]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Data = make(map[string]string, len(s.Data))
	for k, v := range s.Data {
		cp.Data[k] = v
	}
	return &cp, nil
}

func (m *memSessionStore) Set(_ context.Context, tgID int64, s *model.Session) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.Data = make(map[string]string, len(s.Data))
	for k, v := range s.Data {
		cp.Data[k] = v
	}
	m.store[tgID] = &cp
	return nil
}

func (m *memSessionStore) Clear(_ context.Context, tgID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, tgID)
	return nil
}

// memPackageRepo serves a fixed catalog for tests.
type memPackageRepo struct {
	mu    sync.RWMutex
	store map[string]*model.ServicePackage
}

func newMemPackageRepo() *memPackageRepo {
	return &memPackageRepo{store: make(map[string]*model.ServicePackage)}
}

func (m *memPackageRepo) Save(_ context.Context, pkg *model.ServicePackage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *pkg
	m.store[pkg.ID] = &cp
	return nil
}

func (m *memPackageRepo) FindByID(_ context.Context, id string) (*model.ServicePackage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPackageRepo) ListByPlatform(_ context.Context, platform string) ([]*model.ServicePackage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.ServicePackage
	for _, p := range m.store {
		if p.Platform == platform && p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memPackageRepo) ListActive(_ context.Context) ([]*model.ServicePackage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.ServicePackage
	for _, p := range m.store {
		if p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memPackageRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = false
	return nil
}

// memUserRepo stores users by TelegramID.
type memUserRepo struct {
	mu      sync.RWMutex
	store   map[int64]*model.User
	saveErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[int64]*model.User)}
}

func (m *memUserRepo) Save(_ context.Context, user *model.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.store[user.TelegramID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) FindByTelegramID(_ context.Context, tgID int64) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) CountUsers(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// memOrderRepo keeps orders in insertion order.
type memOrderRepo struct {
	mu     sync.RWMutex
	orders []*model.Order
}

func newMemOrderRepo() *memOrderRepo { return &memOrderRepo{} }

func (m *memOrderRepo) Save(_ context.Context, order *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *order
	m.orders = append(m.orders, &cp)
	return nil
}

func (m *memOrderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memOrderRepo) ListByTelegramID(_ context.Context, tgID int64, limit int) ([]*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Order
	for i := len(m.orders) - 1; i >= 0 && len(out) < limit; i-- {
		if m.orders[i].TelegramID == tgID {
			cp := *m.orders[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memOrderRepo) ListRecent(_ context.Context, limit int) ([]*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Order
	for i := len(m.orders) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *m.orders[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memOrderRepo) UpdateStatus(_ context.Context, id string, status model.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

// stubSink captures submitted drafts; SubmitFunc overrides the default.
type stubSink struct {
	mu         sync.Mutex
	submitted  []model.OrderDraft
	SubmitFunc func(ctx context.Context, tgID int64, draft model.OrderDraft) (string, error)
}

func (s *stubSink) Submit(ctx context.Context, tgID int64, draft model.OrderDraft) (string, error) {
	if s.SubmitFunc != nil {
		return s.SubmitFunc(ctx, tgID, draft)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = append(s.submitted, draft)
	return "order-1", nil
}

// acceptCoupons is a test policy accepting a single known code.
type acceptCoupons struct{ code string }

func (a acceptCoupons) Redeem(_ context.Context, code string, _ model.OrderDraft) (bool, error) {
	return code == a.code, nil
}
