package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

type PrintOrderHandler struct {
	service ports.PrintOrderService
}

func NewPrintOrderHandler(service ports.PrintOrderService) *PrintOrderHandler {
	return &PrintOrderHandler{service: service}
}

// Estimate prices a print job with the same function used at submission.
//
// @Summary      Estimate a print job
// @Tags         print-orders
// @Accept       json
// @Produce      json
// @Param        body  body      estimateRequest  true  "Print specification"
// @Success      200   {object}  envelope{data=estimateResponse}
// @Failure      422   {object}  errorResponse
// @Router       /v1/print-orders/estimate [post]
func (h *PrintOrderHandler) Estimate(c echo.Context) error {
	var req estimateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cost, err := h.service.EstimateCost(domain.PrintSpec{
		PaperSize: domain.NormalizePaperSize(req.PaperSize),
		ColorType: domain.ColorType(req.ColorType),
		PageCount: req.PageCount,
		Binding:   domain.Binding(req.Binding),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", estimateResponse{EstimatedCost: cost})
}

// Submit handles POST /v1/print-orders.
//
// @Summary      Submit a print order
// @Tags         print-orders
// @Accept       json
// @Produce      json
// @Param        body  body      submitPrintOrderRequest  true  "Print order"
// @Success      201   {object}  envelope{data=printOrderResponse}
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/print-orders [post]
func (h *PrintOrderHandler) Submit(c echo.Context) error {
	var req submitPrintOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.SubmitPrintOrder(c.Request().Context(), ports.SubmitPrintOrderInput{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		PaperSize:           req.PaperSize,
		ColorType:           req.ColorType,
		PageCount:           req.PageCount,
		Binding:             req.Binding,
		Urgency:             req.Urgency,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "print order submitted", toPrintOrderResponse(order))
}

// Get handles GET /v1/admin/print-orders/:id.
//
// @Summary      Get a print order
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Print order ID"
// @Success      200  {object}  envelope{data=printOrderResponse}
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/print-orders/{id} [get]
func (h *PrintOrderHandler) Get(c echo.Context) error {
	order, err := h.service.GetPrintOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toPrintOrderResponse(order))
}

// List handles GET /v1/admin/print-orders.
//
// @Summary      List print orders
// @Tags         admin
// @Produce      json
// @Param        status    query     string  false  "Print status"
// @Param        urgency   query     string  false  "normal, urgent or express"
// @Param        search    query     string  false  "Name, email or phone"
// @Param        dateFrom  query     string  false  "YYYY-MM-DD"
// @Param        dateTo    query     string  false  "YYYY-MM-DD"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  envelope{data=listResponse[printOrderResponse]}
// @Router       /v1/admin/print-orders [get]
func (h *PrintOrderHandler) List(c echo.Context) error {
	page, limit, from, to, err := listQuery(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListPrintOrders(c.Request().Context(), ports.ListPrintOrdersInput{
		Status:   c.QueryParam("status"),
		Urgency:  c.QueryParam("urgency"),
		Search:   c.QueryParam("search"),
		DateFrom: from,
		DateTo:   to,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", printOrderList(result))
}

// UpdateStatus handles PATCH /v1/admin/print-orders/:id/status.
//
// @Summary      Change a print order's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "Print order ID"
// @Param        body  body      updatePrintOrderStatusRequest  true  "New status, optional final cost and expected version"
// @Success      200   {object}  envelope{data=printOrderResponse}
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/print-orders/{id}/status [patch]
func (h *PrintOrderHandler) UpdateStatus(c echo.Context) error {
	var req updatePrintOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.UpdatePrintOrderStatus(c.Request().Context(), ports.UpdatePrintOrderStatusInput{
		PrintOrderID:    c.Param("id"),
		Status:          req.Status,
		FinalCost:       req.FinalCost,
		ExpectedVersion: req.Version,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "print order updated", toPrintOrderResponse(order))
}
