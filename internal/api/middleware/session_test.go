package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/storefront/internal/core/domain"
)

type stubSessions struct {
	valid map[string]*domain.SessionPayload
	seen  []string
}

func (s *stubSessions) CreateSession(context.Context, *domain.User) (string, error) { return "", nil }
func (s *stubSessions) DeleteSession(context.Context, string)                        {}
func (s *stubSessions) GetSession(_ context.Context, token string) *domain.SessionPayload {
	s.seen = append(s.seen, token)
	return s.valid[token]
}

func TestSession_FromCookie(t *testing.T) {
	sessions := &stubSessions{valid: map[string]*domain.SessionPayload{
		"good": {UserID: "u1", Role: domain.RoleAdmin},
	}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Session(sessions)(func(c echo.Context) error {
		s, ok := c.Get(ContextSession).(*domain.SessionPayload)
		if !ok || s.UserID != "u1" {
			t.Fatalf("session not set: %+v", c.Get(ContextSession))
		}
		if c.Get(ContextRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_BearerFallback(t *testing.T) {
	sessions := &stubSessions{valid: map[string]*domain.SessionPayload{
		"tok": {UserID: "u2", Role: domain.RoleCustomer},
	}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	handler := Session(sessions)(func(c echo.Context) error {
		called = true
		if c.Get(ContextUserID) != "u2" {
			t.Fatalf("user id not set")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestSession_InvalidTokenIsGuest(t *testing.T) {
	sessions := &stubSessions{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tampered"})
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Session(sessions)(func(c echo.Context) error {
		if c.Get(ContextSession) != nil {
			t.Fatalf("guest request must not carry a session")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(sessions.seen) != 1 || sessions.seen[0] != "tampered" {
		t.Fatalf("expected token to be checked once, got %v", sessions.seen)
	}
}

func TestSession_NoTokenSkipsLookup(t *testing.T) {
	sessions := &stubSessions{}
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if err := Session(sessions)(func(echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(sessions.seen) != 0 {
		t.Fatalf("expected no lookup, got %v", sessions.seen)
	}
}

func TestRequireSession(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RequireSession(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	c.Set(ContextSession, &domain.SessionPayload{UserID: "u1"})
	if err := RequireSession(func(echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
