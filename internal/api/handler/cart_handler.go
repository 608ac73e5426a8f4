package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/storefront/internal/core/ports"
)

// CartHandler exposes the server-side cart keyed by the cart_id cookie.
type CartHandler struct {
	carts   ports.CartService
	cookies CookieConfig
}

func NewCartHandler(carts ports.CartService, cookies CookieConfig) *CartHandler {
	return &CartHandler{carts: carts, cookies: cookies}
}

// Get handles GET /v1/cart.
//
// @Summary      Get the current cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  envelope{data=cartResponse}
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	cart := h.carts.Get(c.Request().Context(), h.cookies.cartID(c))
	return respond(c, http.StatusOK, "", toCartResponse(cart))
}

// AddItem handles POST /v1/cart/items.
//
// @Summary      Add one unit of a product
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addCartItemRequest  true  "Product to add"
// @Success      200   {object}  envelope{data=cartResponse}
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cart, err := h.carts.AddItem(c.Request().Context(), h.cookies.cartID(c), req.ProductID, req.VariantID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "item added", toCartResponse(cart))
}

// UpdateQuantity handles PATCH /v1/cart/items/:product_id. A quantity of zero
// or less removes the line.
//
// @Summary      Set a line's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        product_id  path      string                 true  "Product ID"
// @Param        body        body      updateCartItemRequest  true  "New quantity"
// @Success      200         {object}  envelope{data=cartResponse}
// @Router       /v1/cart/items/{product_id} [patch]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req updateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cart := h.carts.UpdateQuantity(c.Request().Context(), h.cookies.cartID(c), c.Param("product_id"), req.VariantID, req.Quantity)
	return respond(c, http.StatusOK, "cart updated", toCartResponse(cart))
}

// RemoveItem handles DELETE /v1/cart/items/:product_id.
//
// @Summary      Remove a line
// @Tags         cart
// @Produce      json
// @Param        product_id  path      string  true   "Product ID"
// @Param        variantId   query     string  false  "Variant ID"
// @Success      200         {object}  envelope{data=cartResponse}
// @Router       /v1/cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	cart := h.carts.RemoveItem(c.Request().Context(), h.cookies.cartID(c), c.Param("product_id"), c.QueryParam("variantId"))
	return respond(c, http.StatusOK, "item removed", toCartResponse(cart))
}

// Clear handles DELETE /v1/cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  envelope{data=cartResponse}
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	cart := h.carts.Clear(c.Request().Context(), h.cookies.cartID(c))
	return respond(c, http.StatusOK, "cart cleared", toCartResponse(cart))
}
