package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/storefront/internal/api/middleware"
	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

// --- stubs ---

type stubOrders struct {
	created   *ports.CreateOrderInput
	createErr error
	listed    *ports.ListOrdersInput
	status    *ports.UpdateOrderStatusInput
}

func (s *stubOrders) CreateOrder(_ context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	s.created = &in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Order{ID: "o1", OrderNumber: "ORD-20250101-AAAAAAAA", Status: domain.OrderPending, Total: in.Cart.Total}, nil
}

func (s *stubOrders) GetOrder(_ context.Context, in ports.GetOrderInput) (*domain.Order, error) {
	return &domain.Order{ID: in.ID, OrderNumber: in.OrderNumber}, nil
}

func (s *stubOrders) UpdateOrderStatus(_ context.Context, in ports.UpdateOrderStatusInput) (*domain.Order, error) {
	s.status = &in
	return &domain.Order{ID: in.OrderID, Status: domain.OrderStatus(in.Status)}, nil
}

func (s *stubOrders) UpdatePaymentStatus(_ context.Context, in ports.UpdatePaymentStatusInput) (*domain.Order, error) {
	return &domain.Order{ID: in.OrderID, PaymentStatus: domain.PaymentStatus(in.PaymentStatus)}, nil
}

func (s *stubOrders) UpdateNotes(_ context.Context, in ports.UpdateNotesInput) (*domain.Order, error) {
	return &domain.Order{ID: in.OrderID, Notes: in.Notes}, nil
}

func (s *stubOrders) ListOrders(_ context.Context, in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	s.listed = &in
	return &ports.ListOrdersResult{Items: []*domain.Order{{ID: "o1"}}, Total: 1, Page: 1, Limit: 20, TotalPages: 1}, nil
}

type stubCarts struct {
	cart    domain.Cart
	ids     []string
	cleared int
}

func (s *stubCarts) Get(_ context.Context, id string) domain.Cart {
	s.ids = append(s.ids, id)
	return s.cart
}

func (s *stubCarts) AddItem(_ context.Context, id, productID, _ string) (domain.Cart, error) {
	s.ids = append(s.ids, id)
	if productID == "missing" {
		return domain.Cart{}, domain.ErrProductNotFound
	}
	return s.cart, nil
}

func (s *stubCarts) RemoveItem(_ context.Context, id, _, _ string) domain.Cart {
	s.ids = append(s.ids, id)
	return s.cart
}

func (s *stubCarts) UpdateQuantity(_ context.Context, id, _, _ string, _ int) domain.Cart {
	s.ids = append(s.ids, id)
	return s.cart
}

func (s *stubCarts) Clear(_ context.Context, id string) domain.Cart {
	s.ids = append(s.ids, id)
	s.cleared++
	return domain.Cart{}.Clear()
}

type stubAuth struct {
	loginErr error
}

func (s *stubAuth) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	return &domain.User{ID: "u1", Email: in.Email}, nil
}

func (s *stubAuth) Login(_ context.Context, email, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "signed-token", &domain.User{ID: "u1", Email: email}, nil
}

func (s *stubAuth) VerifyEmail(context.Context, string) (string, *domain.User, error) {
	return "signed-token", &domain.User{ID: "u1", Verified: true}, nil
}

func (s *stubAuth) ForgotPassword(context.Context, string) error        { return nil }
func (s *stubAuth) ResetPassword(context.Context, string, string) error { return nil }

type stubSessions struct {
	deleted []string
}

func (s *stubSessions) CreateSession(context.Context, *domain.User) (string, error) { return "", nil }
func (s *stubSessions) GetSession(context.Context, string) *domain.SessionPayload   { return nil }
func (s *stubSessions) DeleteSession(_ context.Context, userID string) {
	s.deleted = append(s.deleted, userID)
}

// --- helpers ---

const testCartID = "0b9f3c1e-6c39-4f53-9b8e-7a0a4f7d2c11"

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context, userID, role string) {
	s := &domain.SessionPayload{UserID: userID, Role: role}
	c.Set(middleware.ContextSession, s)
	c.Set(middleware.ContextRole, role)
	c.Set(middleware.ContextUserID, userID)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rec.Body.String())
	}
	return body
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
