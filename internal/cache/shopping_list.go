// Package cache keeps rendered shopping lists in redis so repeated reads skip
// the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/mise/backend/internal/metrics"
	"github.com/pageza/mise/backend/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "mise:shopping_list:"

// ShoppingListCache stores shopping lists as JSON with a fixed TTL.
type ShoppingListCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewShoppingListCache(client *redis.Client, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) *ShoppingListCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShoppingListCache{client: client, ttl: ttl, metrics: m, logger: logger}
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Get returns the cached list and whether it was found. Redis failures are
// logged and reported as a miss.
func (c *ShoppingListCache) Get(ctx context.Context, id uuid.UUID) (*model.ShoppingList, bool) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.CacheOperation("get", "miss")
		return nil, false
	}
	if err != nil {
		c.metrics.CacheOperation("get", "error")
		c.logger.Warn("shopping list cache read failed", zap.String("id", id.String()), zap.Error(err))
		return nil, false
	}

	var list model.ShoppingList
	if err := json.Unmarshal(data, &list); err != nil {
		c.metrics.CacheOperation("get", "error")
		c.logger.Warn("discarding corrupt cache entry", zap.String("id", id.String()), zap.Error(err))
		_ = c.client.Del(ctx, key(id)).Err()
		return nil, false
	}
	c.metrics.CacheOperation("get", "hit")
	return &list, true
}

func (c *ShoppingListCache) Set(ctx context.Context, list *model.ShoppingList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode shopping list: %w", err)
	}
	if err := c.client.Set(ctx, key(list.ID), data, c.ttl).Err(); err != nil {
		c.metrics.CacheOperation("set", "error")
		return fmt.Errorf("failed to cache shopping list: %w", err)
	}
	c.metrics.CacheOperation("set", "ok")
	return nil
}

func (c *ShoppingListCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		c.metrics.CacheOperation("invalidate", "error")
		return fmt.Errorf("failed to invalidate shopping list: %w", err)
	}
	c.metrics.CacheOperation("invalidate", "ok")
	return nil
}
