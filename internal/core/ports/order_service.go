package ports

import (
	"context"
	"time"

	"github.com/inkwell/storefront/internal/core/domain"
)

// CustomerInput holds checkout contact details.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// CreateOrderInput carries everything needed to turn a cart into an order.
type CreateOrderInput struct {
	Cart             domain.Cart
	Customer         CustomerInput
	CollectionMethod string
	Notes            string
	UserID           string // empty for guest checkout
}

// Viewer identifies who is reading an order.
type Viewer struct {
	UserID string
	Role   string
}

// GetOrderInput looks an order up by ID or, when ID is empty, by number.
type GetOrderInput struct {
	ID          string
	OrderNumber string
	Viewer      Viewer
}

// UpdateOrderStatusInput changes fulfilment status.
type UpdateOrderStatusInput struct {
	OrderID         string
	Status          string
	ExpectedVersion *int64
}

// UpdatePaymentStatusInput changes settlement status.
type UpdatePaymentStatusInput struct {
	OrderID         string
	PaymentStatus   string
	ExpectedVersion *int64
}

// UpdateNotesInput replaces the administrative notes.
type UpdateNotesInput struct {
	OrderID         string
	Notes           string
	ExpectedVersion *int64
}

// ListOrdersInput carries all parameters for the admin list.
type ListOrdersInput struct {
	Viewer           Viewer
	Status           string
	PaymentStatus    string
	CollectionMethod string
	Search           string
	DateFrom         time.Time
	DateTo           time.Time
	Page             int
	Limit            int
}

// ListOrdersResult is returned by ListOrders.
type ListOrdersResult struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, input GetOrderInput) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, input UpdateOrderStatusInput) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, input UpdatePaymentStatusInput) (*domain.Order, error)
	UpdateNotes(ctx context.Context, input UpdateNotesInput) (*domain.Order, error)
	ListOrders(ctx context.Context, input ListOrdersInput) (*ListOrdersResult, error)
}
