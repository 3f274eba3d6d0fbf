package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"motoMatch/domain"
	"motoMatch/pkg/logger"
)

const catalogKey = "catalog:motos"

// CatalogSource is whatever actually owns the catalog (the postgres repo).
type CatalogSource interface {
	FindAll(ctx context.Context) ([]domain.Moto, error)
}

// CatalogCache is a read-through JSON cache in front of the catalog store.
// Cache failures are never surfaced: a broken redis degrades to direct
// source reads.
type CatalogCache struct {
	client *redis.Client
	source CatalogSource
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, source CatalogSource, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &CatalogCache{
		client: client,
		source: source,
		ttl:    ttl,
	}
}

func (c *CatalogCache) FindAll(ctx context.Context) ([]domain.Moto, error) {
	val, err := c.client.Get(ctx, catalogKey).Result()
	if err == nil {
		var motos []domain.Moto
		if err := json.Unmarshal([]byte(val), &motos); err == nil {
			return motos, nil
		}
		logger.Warn("corrupt catalog cache entry, falling through", "error", err)
	} else if err != redis.Nil {
		logger.Warn("catalog cache read failed, falling through", "error", err)
	}

	motos, err := c.source.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(motos); err == nil {
		if err := c.client.Set(ctx, catalogKey, jsonData, c.ttl).Err(); err != nil {
			logger.Warn("failed to populate catalog cache", "error", err)
		}
	}

	return motos, nil
}

// Invalidate drops the cached listing after catalog writes.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}
