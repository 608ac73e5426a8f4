package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/storefront/internal/api/handler"
	"github.com/inkwell/storefront/internal/api/middleware"
	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/service"
)

type discardEvents struct{}

func (discardEvents) Publish(domain.Event) {}

var (
	routerOnce sync.Once
	testRouter *echo.Echo
	sessions   *service.SessionService
)

// router is built once: the prometheus middleware registers its collectors
// globally.
func router(t *testing.T) *echo.Echo {
	t.Helper()
	routerOnce.Do(func() {
		sessions = service.NewSessionService("router-test", time.Hour, discardEvents{}, zerolog.Nop())
		testRouter = NewRouter(Dependencies{
			Sessions:    sessions,
			PrintOrders: service.NewPrintOrderService(nil, discardEvents{}, zerolog.Nop()),
			Checks: map[string]handler.Check{
				"mongodb": func(context.Context) error { return nil },
			},
			RequestTimeout: time.Second,
			Log:            zerolog.Nop(),
		})
	})
	return testRouter
}

func sessionCookie(t *testing.T, role string) *http.Cookie {
	t.Helper()
	token, err := sessions.CreateSession(context.Background(), &domain.User{ID: "u-" + role, Role: role})
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_AdminRoutesRequireAdmin(t *testing.T) {
	e := router(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/v1/admin/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"authentication required"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/print-orders", nil)
	req.AddCookie(sessionCookie(t, domain.RoleCustomer))
	rec = serve(e, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/admin/orders", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec = serve(e, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_MyOrdersRequiresSession(t *testing.T) {
	rec := serve(router(t), httptest.NewRequest(http.MethodGet, "/v1/me/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_SessionEndpoint(t *testing.T) {
	e := router(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.AddCookie(sessionCookie(t, domain.RoleAdmin))
	rec := serve(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestRouter_PublicEstimate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/print-orders/estimate",
		strings.NewReader(`{"paperSize":"A4","colorType":"bw","pageCount":10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := serve(router(t), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"estimatedCost":20}}`, rec.Body.String())
}

func TestRouter_ProbesAndMetrics(t *testing.T) {
	e := router(t)

	assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodGet, "/health/ready", nil)).Code)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_")

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
