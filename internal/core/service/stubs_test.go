package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

// --- events ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(e domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// --- orders ---

type stubOrderRepo struct {
	orders      map[string]*domain.Order
	seq         int
	createErrs  []error // consumed one per Create call
	createCalls int
	updateCalls int
	lastFilter  ports.ListOrdersFilter
	listErr     error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[string]*domain.Order{}}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.createCalls++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	r.seq++
	o.ID = "ord-" + strconv.Itoa(r.seq)
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	r.orders[o.ID] = &cp
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) FindByOrderNumber(_ context.Context, number string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == number {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) Update(_ context.Context, id string, u ports.OrderUpdate, expected *int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if expected != nil && *expected != o.Version {
		return nil, domain.ErrVersionConflict
	}
	r.updateCalls++
	if u.Status != nil {
		o.Status = *u.Status
	}
	if u.PaymentStatus != nil {
		o.PaymentStatus = *u.PaymentStatus
	}
	if u.Notes != nil {
		o.Notes = *u.Notes
	}
	o.Version++
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	r.lastFilter = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var out []*domain.Order
	for _, o := range r.orders {
		if f.UserID == "" || o.UserID == f.UserID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

// --- print orders ---

type stubPrintRepo struct {
	orders      map[string]*domain.PrintOrder
	seq         int
	createErr   error
	updateCalls int
	lastFilter  ports.ListPrintOrdersFilter
}

func newStubPrintRepo() *stubPrintRepo {
	return &stubPrintRepo{orders: map[string]*domain.PrintOrder{}}
}

func (r *stubPrintRepo) Create(_ context.Context, p *domain.PrintOrder) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	p.ID = "print-" + strconv.Itoa(r.seq)
	cp := *p
	r.orders[p.ID] = &cp
	return nil
}

func (r *stubPrintRepo) FindByID(_ context.Context, id string) (*domain.PrintOrder, error) {
	p, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrPrintOrderNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPrintRepo) Update(_ context.Context, id string, u ports.PrintOrderUpdate, expected *int64) (*domain.PrintOrder, error) {
	p, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrPrintOrderNotFound
	}
	if expected != nil && *expected != p.Version {
		return nil, domain.ErrVersionConflict
	}
	r.updateCalls++
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.FinalCost != nil {
		v := *u.FinalCost
		p.FinalCost = &v
	}
	p.Version++
	cp := *p
	return &cp, nil
}

func (r *stubPrintRepo) List(_ context.Context, f ports.ListPrintOrdersFilter) ([]*domain.PrintOrder, int64, error) {
	r.lastFilter = f
	out := make([]*domain.PrintOrder, 0, len(r.orders))
	for _, p := range r.orders {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

// --- cart ---

type stubCartStore struct {
	carts   map[string]domain.Cart
	loadErr   error
	saveErr   error
	deleteErr error
	saves     int
	deletes   int
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: map[string]domain.Cart{}}
}

func (s *stubCartStore) Load(_ context.Context, id string) (domain.Cart, error) {
	if s.loadErr != nil {
		return domain.Cart{}, s.loadErr
	}
	c, ok := s.carts[id]
	if !ok {
		return domain.Cart{}.Clear(), nil
	}
	return c, nil
}

func (s *stubCartStore) Save(_ context.Context, id string, c domain.Cart) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.carts[id] = c
	return nil
}

func (s *stubCartStore) Delete(_ context.Context, id string) error {
	s.deletes++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.carts, id)
	return nil
}

type stubProducts map[string]*domain.Product

func (p stubProducts) FindByID(_ context.Context, id string) (*domain.Product, error) {
	if prod, ok := p[id]; ok {
		cp := *prod
		return &cp, nil
	}
	return nil, domain.ErrProductNotFound
}

// --- auth ---

type stubAuthRepo struct {
	users     map[string]*domain.User // by email
	createErr error
	saves     int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: map[string]*domain.User{}}
}

func (r *stubAuthRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.users[u.Email]; ok {
		return nil, domain.ErrUserExists
	}
	u.ID = "user-" + strconv.Itoa(len(r.users)+1)
	cp := *u
	r.users[u.Email] = &cp
	return u, nil
}

func (r *stubAuthRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubAuthRepo) FindByVerificationToken(_ context.Context, token string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.VerificationToken != "" && u.VerificationToken == token })
}

func (r *stubAuthRepo) FindByResetToken(_ context.Context, token string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ResetToken != "" && u.ResetToken == token })
}

func (r *stubAuthRepo) Save(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.Email]; !ok {
		return domain.ErrUserNotFound
	}
	r.saves++
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

type stubLimiter struct {
	deny map[string]bool
	err  error
	keys []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	if l.err != nil {
		return false, l.err
	}
	return !l.deny[key], nil
}

type sentMail struct {
	kind, to, token string
}

type stubMailer struct {
	sent []sentMail
	err  error
}

func (m *stubMailer) SendVerification(_ context.Context, to, token string) error {
	m.sent = append(m.sent, sentMail{"verify", to, token})
	return m.err
}

func (m *stubMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.sent = append(m.sent, sentMail{"reset", to, token})
	return m.err
}

var errStore = errors.New("store unavailable")
