package ports

import (
	"context"

	"github.com/inkwell/storefront/internal/core/domain"
)

// ProductRepository is the read-only view of the catalogue the cart needs.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}
