package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"tiendaBack/internal/models"
)

// CartRepository keeps one serialized cart per token in Redis. Every save
// rewrites the whole cart under its key, so the stored value is always the
// complete current state.
type CartRepository struct {
	RDB *redis.Client
	TTL time.Duration
}

func cartKey(token string) string {
	return fmt.Sprintf("cart:%s", token)
}

// GetCart loads the cart for a token. A missing key or a payload that does
// not parse yields an empty cart, a shopper is never blocked by a bad stored
// value.
func (r *CartRepository) GetCart(ctx context.Context, token string) (models.Cart, error) {
	raw, err := r.RDB.Get(ctx, cartKey(token)).Bytes()
	if err == redis.Nil {
		return models.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart repository: get cart: %w", err)
	}
	return decodeCart(token, raw), nil
}

// SaveCart overwrites the stored cart and refreshes its TTL.
func (r *CartRepository) SaveCart(ctx context.Context, token string, cart models.Cart) error {
	raw, err := encodeCart(cart)
	if err != nil {
		return fmt.Errorf("cart repository: marshal cart: %w", err)
	}
	if err := r.RDB.Set(ctx, cartKey(token), raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("cart repository: save cart: %w", err)
	}
	return nil
}

// DeleteCart drops the stored cart entirely.
func (r *CartRepository) DeleteCart(ctx context.Context, token string) error {
	if err := r.RDB.Del(ctx, cartKey(token)).Err(); err != nil {
		return fmt.Errorf("cart repository: delete cart: %w", err)
	}
	return nil
}

func encodeCart(cart models.Cart) ([]byte, error) {
	if cart == nil {
		cart = models.Cart{}
	}
	return json.Marshal(cart)
}

func decodeCart(token string, raw []byte) models.Cart {
	var cart models.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		log.Printf("corrupt cart payload for token %s: %v", token, err)
		return models.Cart{}
	}
	return cart
}
