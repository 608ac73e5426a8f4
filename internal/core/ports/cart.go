package ports

import (
	"context"

	"github.com/inkwell/storefront/internal/core/domain"
)

// CartStore persists whole cart snapshots keyed by an opaque cart ID.
// Load returns an empty cart when nothing is stored.
type CartStore interface {
	Load(ctx context.Context, cartID string) (domain.Cart, error)
	Save(ctx context.Context, cartID string, cart domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}

// CartService applies cart operations and persists the result.
type CartService interface {
	Get(ctx context.Context, cartID string) domain.Cart
	AddItem(ctx context.Context, cartID, productID, variantID string) (domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID, variantID string) domain.Cart
	UpdateQuantity(ctx context.Context, cartID, productID, variantID string, quantity int) domain.Cart
	Clear(ctx context.Context, cartID string) domain.Cart
}
