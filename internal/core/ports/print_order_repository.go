package ports

import (
	"context"
	"time"

	"github.com/inkwell/storefront/internal/core/domain"
)

// ListPrintOrdersFilter carries query parameters for listing print orders.
type ListPrintOrdersFilter struct {
	Status   string
	Urgency  string
	Search   string // partial match on name, email or phone
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	Limit    int
}

// PrintOrderUpdate lists the fields an administrator may change.
type PrintOrderUpdate struct {
	Status    *domain.PrintStatus
	FinalCost *float64
}

// PrintOrderRepository defines persistence operations for print orders.
type PrintOrderRepository interface {
	Create(ctx context.Context, p *domain.PrintOrder) error
	FindByID(ctx context.Context, id string) (*domain.PrintOrder, error)
	Update(ctx context.Context, id string, u PrintOrderUpdate, expectedVersion *int64) (*domain.PrintOrder, error)
	List(ctx context.Context, filter ListPrintOrdersFilter) ([]*domain.PrintOrder, int64, error)
}
