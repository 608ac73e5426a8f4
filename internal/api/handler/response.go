package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/inkwell/storefront/internal/core/ports"
)

// envelope wraps every successful response body.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// errorResponse documents the failure envelope written by api.NewHTTPErrorHandler.
type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"order not found"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, envelope{Success: true, Message: message, Data: data})
}

type pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type listResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination pagination `json:"pagination"`
}

func orderList(r *ports.ListOrdersResult) listResponse[orderResponse] {
	items := make([]orderResponse, 0, len(r.Items))
	for _, o := range r.Items {
		items = append(items, toOrderResponse(o))
	}
	return listResponse[orderResponse]{
		Items:      items,
		Pagination: pagination{Total: r.Total, Page: r.Page, Limit: r.Limit, TotalPages: r.TotalPages},
	}
}

func printOrderList(r *ports.ListPrintOrdersResult) listResponse[printOrderResponse] {
	items := make([]printOrderResponse, 0, len(r.Items))
	for _, p := range r.Items {
		items = append(items, toPrintOrderResponse(p))
	}
	return listResponse[printOrderResponse]{
		Items:      items,
		Pagination: pagination{Total: r.Total, Page: r.Page, Limit: r.Limit, TotalPages: r.TotalPages},
	}
}
