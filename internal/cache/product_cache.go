package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-product-service/internal/domain"
)

// ProductCache is a redis-backed read cache for product lookups. All cache
// failures are soft: callers fall through to the database and the error is
// only logged, so a dead redis never breaks reads.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductCache builds a cache. A nil client disables caching entirely.
func NewProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProductCache {
	return &ProductCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached product for code+location, or (nil, false) on miss.
func (pc *ProductCache) Get(ctx context.Context, code, location string) (*domain.Product, bool) {
	if pc == nil || pc.client == nil {
		return nil, false
	}
	raw, err := pc.client.Get(ctx, cacheKey(code, location)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			pc.logger.Warn("product cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		pc.logger.Warn("product cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &product, true
}

// Set stores a product under its code+location key.
func (pc *ProductCache) Set(ctx context.Context, product *domain.Product) {
	if pc == nil || pc.client == nil || product == nil {
		return
	}
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := pc.client.Set(ctx, cacheKey(product.ProductCode, product.Location), raw, pc.ttl).Err(); err != nil {
		pc.logger.Warn("product cache set failed", zap.Error(err))
	}
}

// InvalidateCode drops every cached location entry for a product code.
// Mutations key off productCode alone, so all locations are scanned.
func (pc *ProductCache) InvalidateCode(ctx context.Context, code string) {
	if pc == nil || pc.client == nil {
		return
	}
	pattern := fmt.Sprintf("product:%s:*", code)
	iter := pc.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := pc.client.Del(ctx, iter.Val()).Err(); err != nil {
			pc.logger.Warn("product cache invalidate failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		pc.logger.Warn("product cache scan failed", zap.Error(err))
	}
}

func cacheKey(code, location string) string {
	return fmt.Sprintf("product:%s:%s", code, location)
}
