package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell/storefront/internal/core/domain"
)

const defaultCartTTL = 30 * 24 * time.Hour

// CartStore keeps cart snapshots as JSON under cart:<id>. Every save refreshes
// the TTL, so abandoned carts expire on their own.
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartStore(client *redis.Client, ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	return &CartStore{client: client, ttl: ttl}
}

func (s *CartStore) Load(ctx context.Context, cartID string) (domain.Cart, error) {
	raw, err := s.client.Get(ctx, cartKey(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Cart{}.Clear(), nil
		}
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart: %w", err)
	}
	return cart, nil
}

func (s *CartStore) Save(ctx context.Context, cartID string, cart domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.client.Set(ctx, cartKey(cartID), raw, s.ttl).Err()
}

func (s *CartStore) Delete(ctx context.Context, cartID string) error {
	return s.client.Del(ctx, cartKey(cartID)).Err()
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}
