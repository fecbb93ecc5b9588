package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

// CartCacheRepository is the fast, advisory copy of a cart keyed by
// (group, order). The orders table stays authoritative.
type CartCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewCartCacheRepository creates a cache whose entries live for expiration.
func NewCartCacheRepository(client *redis.Client, expiration time.Duration) *CartCacheRepository {
	return &CartCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func cartKey(groupID, orderID int64) string {
	return fmt.Sprintf("cart:%d:%d", groupID, orderID)
}

// Set stores the cart under (group, order) and restarts its TTL.
func (r *CartCacheRepository) Set(ctx context.Context, groupID, orderID int64, cart *models.Cart) error {
	key := cartKey(groupID, orderID)

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"cart cache",
		"key", key,
		"ttl", r.exp,
		"result", "set",
		"error", err,
	)

	return err
}

// Get returns the cached cart or ErrNotFound on a miss.
func (r *CartCacheRepository) Get(ctx context.Context, groupID, orderID int64) (*models.Cart, error) {
	key := cartKey(groupID, orderID)

	val, err := r.client.Get(ctx, key).Bytes()

	logger.Log.Infow(
		"cart cache",
		"key", key,
		"hit", err == nil,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("cart %s not cached: %w", key, apperrors.ErrNotFound)
		}
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(val, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Delete evicts the entry. Evicting a missing key is not an error.
func (r *CartCacheRepository) Delete(ctx context.Context, groupID, orderID int64) error {
	key := cartKey(groupID, orderID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"cart cache",
		"key", key,
		"result", "del",
		"error", err,
	)

	return err
}
