package ports

import (
	"context"
	"time"

	"github.com/inkwell/storefront/internal/core/domain"
)

// ListOrdersFilter carries all query parameters for listing orders.
type ListOrdersFilter struct {
	UserID           string    // empty = every customer
	Status           string    // optional
	PaymentStatus    string    // optional
	CollectionMethod string    // optional
	Search           string    // optional: partial match on orderNumber, customer name or email
	DateFrom         time.Time // optional: createdAt >= DateFrom
	DateTo           time.Time // optional: createdAt <= DateTo
	Page             int       // 1-based
	Limit            int
}

// OrderUpdate lists the only fields that may change after creation. Nil
// fields are left untouched.
type OrderUpdate struct {
	Status        *domain.OrderStatus
	PaymentStatus *domain.PaymentStatus
	Notes         *string
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Create inserts the order in a single write and fills in its ID.
	// A duplicate order number is reported as *domain.ConflictError.
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	// Update applies u and bumps the version. When expectedVersion is non-nil
	// the write only happens if the stored version still matches.
	Update(ctx context.Context, id string, u OrderUpdate, expectedVersion *int64) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
}
