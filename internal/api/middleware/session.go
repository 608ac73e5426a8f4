package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "session"

	ContextSession = "session"
	ContextRole    = "role"
	ContextUserID  = "user_id"
)

// Session resolves the caller's session from the session cookie, or from a
// bearer token when no cookie is present, and stores it on the context.
// Requests without a valid session pass through as guests.
func Session(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFrom(c)
			if token == "" {
				return next(c)
			}
			if s := sessions.GetSession(c.Request().Context(), token); s != nil {
				c.Set(ContextSession, s)
				c.Set(ContextRole, s.Role)
				c.Set(ContextUserID, s.UserID)
			}
			return next(c)
		}
	}
}

// RequireSession rejects guests with domain.ErrUnauthenticated.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get(ContextSession).(*domain.SessionPayload); !ok {
			return domain.ErrUnauthenticated
		}
		return next(c)
	}
}

func tokenFrom(c echo.Context) string {
	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
