package ports

import (
	"context"
	"time"

	"github.com/inkwell/storefront/internal/core/domain"
)

// SubmitPrintOrderInput is a customer's print request.
type SubmitPrintOrderInput struct {
	Name                string
	Email               string
	Phone               string
	PaperSize           string
	ColorType           string
	PageCount           int
	Binding             string
	Urgency             string
	SpecialInstructions string
}

// UpdatePrintOrderStatusInput is an administrative status change.
type UpdatePrintOrderStatusInput struct {
	PrintOrderID    string
	Status          string
	FinalCost       *float64
	ExpectedVersion *int64
}

// ListPrintOrdersInput carries the admin list parameters.
type ListPrintOrdersInput struct {
	Status   string
	Urgency  string
	Search   string
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	Limit    int
}

// ListPrintOrdersResult is returned by ListPrintOrders.
type ListPrintOrdersResult struct {
	Items      []*domain.PrintOrder
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PrintOrderService defines use-case operations for print orders.
type PrintOrderService interface {
	EstimateCost(spec domain.PrintSpec) (float64, error)
	SubmitPrintOrder(ctx context.Context, input SubmitPrintOrderInput) (*domain.PrintOrder, error)
	GetPrintOrder(ctx context.Context, id string) (*domain.PrintOrder, error)
	UpdatePrintOrderStatus(ctx context.Context, input UpdatePrintOrderStatusInput) (*domain.PrintOrder, error)
	ListPrintOrders(ctx context.Context, input ListPrintOrdersInput) (*ListPrintOrdersResult, error)
}
