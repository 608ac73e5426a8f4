package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/inkwell/storefront/internal/api/middleware"
	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

const (
	cartCookie        = "cart_id"
	defaultCartMaxAge = 30 * 24 * time.Hour
)

// CookieConfig controls the cookies handlers set. CartTTL should match the
// cart store's TTL so the cookie never outlives the stored cart.
type CookieConfig struct {
	Secure     bool
	SessionTTL time.Duration
	CartTTL    time.Duration
}

func (cc CookieConfig) cartMaxAge() time.Duration {
	if cc.CartTTL <= 0 {
		return defaultCartMaxAge
	}
	return cc.CartTTL
}

// sessionFrom returns the session the Session middleware resolved, or nil.
func sessionFrom(c echo.Context) *domain.SessionPayload {
	s, _ := c.Get(middleware.ContextSession).(*domain.SessionPayload)
	return s
}

func viewerFrom(c echo.Context) ports.Viewer {
	s := sessionFrom(c)
	if s == nil {
		return ports.Viewer{}
	}
	return ports.Viewer{UserID: s.UserID, Role: s.Role}
}

func (cc CookieConfig) setSession(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cc.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (cc CookieConfig) clearSession(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// cartID returns the caller's cart id, issuing a new cookie when the request
// has none or carries something that is not a UUID.
func (cc CookieConfig) cartID(c echo.Context) string {
	if ck, err := c.Cookie(cartCookie); err == nil {
		if id, err := uuid.Parse(ck.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     cartCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cc.cartMaxAge().Seconds()),
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// listQuery binds the paging and date-range parameters every list shares.
// Dates are YYYY-MM-DD; dateTo covers the whole day.
func listQuery(c echo.Context) (page, limit int, from, to time.Time, err error) {
	err = echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		Time("dateFrom", &from, time.DateOnly).
		Time("dateTo", &to, time.DateOnly).
		BindError()
	if err != nil {
		return 0, 0, from, to, echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if !to.IsZero() {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return page, limit, from, to, nil
}
