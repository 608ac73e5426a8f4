package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/inkwell/storefront/docs"
	"github.com/inkwell/storefront/internal/api/handler"
	"github.com/inkwell/storefront/internal/api/middleware"
	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

// Dependencies is everything the HTTP surface needs, already wired.
type Dependencies struct {
	Auth        ports.AuthService
	Sessions    ports.SessionService
	Carts       ports.CartService
	Orders      ports.OrderService
	PrintOrders ports.PrintOrderService

	Checks         map[string]handler.Check
	Cookies        handler.CookieConfig
	RequestTimeout time.Duration
	Log            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("storefront"))
	if d.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
			Timeout: d.RequestTimeout,
		}))
	}
	e.Use(middleware.Session(d.Sessions))

	// --- Probes, metrics, docs (no auth required) ---
	health := handler.NewHealthHandler(d.Checks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.Cookies)
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.Session)
	auth.POST("/verify", authHandler.VerifyEmail)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	v1 := e.Group("/v1")

	// --- Cart ---
	cartHandler := handler.NewCartHandler(d.Carts, d.Cookies)
	v1.GET("/cart", cartHandler.Get)
	v1.DELETE("/cart", cartHandler.Clear)
	v1.POST("/cart/items", cartHandler.AddItem)
	v1.PATCH("/cart/items/:product_id", cartHandler.UpdateQuantity)
	v1.DELETE("/cart/items/:product_id", cartHandler.RemoveItem)

	// --- Orders ---
	orderHandler := handler.NewOrderHandler(d.Orders, d.Carts, d.Cookies)
	v1.POST("/checkout", orderHandler.Checkout)
	v1.GET("/orders/:id", orderHandler.Get)
	v1.GET("/orders/track/:order_number", orderHandler.Track)
	v1.GET("/me/orders", orderHandler.List, middleware.RequireSession)

	// --- Print orders ---
	printHandler := handler.NewPrintOrderHandler(d.PrintOrders)
	v1.POST("/print-orders/estimate", printHandler.Estimate)
	v1.POST("/print-orders", printHandler.Submit)

	// --- Admin ---
	admin := v1.Group("/admin", middleware.RequireSession, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/orders", orderHandler.List)
	admin.GET("/orders/:id", orderHandler.Get)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.PATCH("/orders/:id/payment", orderHandler.UpdatePayment)
	admin.PATCH("/orders/:id/notes", orderHandler.UpdateNotes)
	admin.GET("/print-orders", printHandler.List)
	admin.GET("/print-orders/:id", printHandler.Get)
	admin.PATCH("/print-orders/:id/status", printHandler.UpdateStatus)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
