package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/storefront/internal/core/ports"
)

// OrderHandler handles checkout, order lookup and the admin order views.
type OrderHandler struct {
	orders  ports.OrderService
	carts   ports.CartService
	cookies CookieConfig
}

func NewOrderHandler(orders ports.OrderService, carts ports.CartService, cookies CookieConfig) *OrderHandler {
	return &OrderHandler{orders: orders, carts: carts, cookies: cookies}
}

// Checkout turns the caller's cart into an order and empties the cart.
//
// @Summary      Place an order from the current cart
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      checkoutRequest  true  "Customer and collection details"
// @Success      201   {object}  envelope{data=orderResponse}
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/checkout [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	cartID := h.cookies.cartID(c)

	order, err := h.orders.CreateOrder(ctx, ports.CreateOrderInput{
		Cart: h.carts.Get(ctx, cartID),
		Customer: ports.CustomerInput{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		CollectionMethod: req.CollectionMethod,
		Notes:            req.Notes,
		UserID:           viewerFrom(c).UserID,
	})
	if err != nil {
		return err
	}

	h.carts.Clear(ctx, cartID)
	return respond(c, http.StatusCreated, "order placed", toOrderResponse(order))
}

// Get handles GET /v1/orders/:id and GET /v1/admin/orders/:id.
//
// @Summary      Get an order by ID
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  envelope{data=orderResponse}
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orders.GetOrder(c.Request().Context(), ports.GetOrderInput{
		ID:     c.Param("id"),
		Viewer: viewerFrom(c),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toOrderResponse(order))
}

// Track handles GET /v1/orders/track/:order_number.
//
// @Summary      Track an order by number
// @Tags         orders
// @Produce      json
// @Param        order_number  path      string  true  "Order number (e.g. ORD-20250101-1A2B3C4D)"
// @Success      200           {object}  envelope{data=orderResponse}
// @Failure      404           {object}  errorResponse
// @Router       /v1/orders/track/{order_number} [get]
func (h *OrderHandler) Track(c echo.Context) error {
	order, err := h.orders.GetOrder(c.Request().Context(), ports.GetOrderInput{
		OrderNumber: c.Param("order_number"),
		Viewer:      viewerFrom(c),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toOrderResponse(order))
}

// List handles GET /v1/me/orders and GET /v1/admin/orders. Customers only see
// their own orders; the service enforces that.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        status            query     string  false  "Order status"
// @Param        paymentStatus     query     string  false  "Payment status"
// @Param        collectionMethod  query     string  false  "pickup or delivery"
// @Param        search            query     string  false  "Order number, customer name or email"
// @Param        dateFrom          query     string  false  "YYYY-MM-DD"
// @Param        dateTo            query     string  false  "YYYY-MM-DD"
// @Param        page              query     int     false  "Page (1-based)"
// @Param        limit             query     int     false  "Page size (max 100)"
// @Success      200               {object}  envelope{data=listResponse[orderResponse]}
// @Failure      401               {object}  errorResponse
// @Router       /v1/admin/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	page, limit, from, to, err := listQuery(c)
	if err != nil {
		return err
	}

	result, err := h.orders.ListOrders(c.Request().Context(), ports.ListOrdersInput{
		Viewer:           viewerFrom(c),
		Status:           c.QueryParam("status"),
		PaymentStatus:    c.QueryParam("paymentStatus"),
		CollectionMethod: c.QueryParam("collectionMethod"),
		Search:           c.QueryParam("search"),
		DateFrom:         from,
		DateTo:           to,
		Page:             page,
		Limit:            limit,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", orderList(result))
}

// UpdateStatus handles PATCH /v1/admin/orders/:id/status.
//
// @Summary      Change an order's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Order ID"
// @Param        body  body      updateOrderStatusRequest  true  "New status and optional expected version"
// @Success      200   {object}  envelope{data=orderResponse}
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orders.UpdateOrderStatus(c.Request().Context(), ports.UpdateOrderStatusInput{
		OrderID:         c.Param("id"),
		Status:          req.Status,
		ExpectedVersion: req.Version,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "order status updated", toOrderResponse(order))
}

// UpdatePayment handles PATCH /v1/admin/orders/:id/payment.
//
// @Summary      Change an order's payment status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "Order ID"
// @Param        body  body      updatePaymentStatusRequest  true  "New payment status"
// @Success      200   {object}  envelope{data=orderResponse}
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/orders/{id}/payment [patch]
func (h *OrderHandler) UpdatePayment(c echo.Context) error {
	var req updatePaymentStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orders.UpdatePaymentStatus(c.Request().Context(), ports.UpdatePaymentStatusInput{
		OrderID:         c.Param("id"),
		PaymentStatus:   req.PaymentStatus,
		ExpectedVersion: req.Version,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "payment status updated", toOrderResponse(order))
}

// UpdateNotes handles PATCH /v1/admin/orders/:id/notes.
//
// @Summary      Replace an order's notes
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Order ID"
// @Param        body  body      updateNotesRequest  true  "Notes"
// @Success      200   {object}  envelope{data=orderResponse}
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/orders/{id}/notes [patch]
func (h *OrderHandler) UpdateNotes(c echo.Context) error {
	var req updateNotesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orders.UpdateNotes(c.Request().Context(), ports.UpdateNotesInput{
		OrderID:         c.Param("id"),
		Notes:           req.Notes,
		ExpectedVersion: req.Version,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "notes updated", toOrderResponse(order))
}
