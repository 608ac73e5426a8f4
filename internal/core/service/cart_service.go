package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/storefront/internal/api/metrics"
	"github.com/inkwell/storefront/internal/core/domain"
	"github.com/inkwell/storefront/internal/core/ports"
)

// CartService runs the cart reducer and syncs the result to the cart store.
// The store is best effort: load failures start from an empty cart and save
// failures are logged, the reduced cart is still returned.
type CartService struct {
	store    ports.CartStore
	products ports.ProductRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewCartService(store ports.CartStore, products ports.ProductRepository, log zerolog.Logger) *CartService {
	return &CartService{store: store, products: products, log: log, now: time.Now}
}

func (s *CartService) Get(ctx context.Context, cartID string) domain.Cart {
	return s.load(ctx, cartID)
}

// AddItem resolves productID against the catalogue and adds one unit.
func (s *CartService) AddItem(ctx context.Context, cartID, productID, variantID string) (domain.Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !product.Purchasable() {
		return domain.Cart{}, domain.ErrProductUnavailable
	}

	cart := s.load(ctx, cartID).AddItem(*product, variantID, s.now())
	s.persist(ctx, cartID, cart, "add")
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, productID, variantID string) domain.Cart {
	cart := s.load(ctx, cartID).RemoveItem(productID, variantID)
	s.persist(ctx, cartID, cart, "remove")
	return cart
}

func (s *CartService) UpdateQuantity(ctx context.Context, cartID, productID, variantID string, quantity int) domain.Cart {
	cart := s.load(ctx, cartID).UpdateQuantity(productID, variantID, quantity)
	s.persist(ctx, cartID, cart, "update_quantity")
	return cart
}

// Clear drops the stored snapshot; a missing key already loads as empty.
func (s *CartService) Clear(ctx context.Context, cartID string) domain.Cart {
	metrics.CartOperationsTotal.WithLabelValues("clear").Inc()
	if err := s.store.Delete(ctx, cartID); err != nil {
		metrics.CartPersistErrorsTotal.Inc()
		s.log.Error().Err(err).Str("cart_id", cartID).Str("operation", "clear").Msg("failed to delete cart")
	}
	return domain.Cart{}.Clear()
}

func (s *CartService) load(ctx context.Context, cartID string) domain.Cart {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		s.log.Warn().Err(err).Str("cart_id", cartID).Msg("failed to load cart, starting empty")
		return domain.Cart{}.Clear()
	}
	return cart.Recalculate()
}

func (s *CartService) persist(ctx context.Context, cartID string, cart domain.Cart, op string) {
	metrics.CartOperationsTotal.WithLabelValues(op).Inc()
	if err := s.store.Save(ctx, cartID, cart); err != nil {
		metrics.CartPersistErrorsTotal.Inc()
		s.log.Error().Err(err).Str("cart_id", cartID).Str("operation", op).Msg("failed to persist cart")
	}
}
