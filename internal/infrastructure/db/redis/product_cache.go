package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tesloshop/catalog-api/internal/core/ports"
)

const cacheTTL = 5 * time.Minute

// ProductCache is a best-effort read cache for product lookups.
// Key format: product:<lower-cased criteria>. A backend failure is
// logged and treated as a miss; the store stays the source of truth.
type ProductCache struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewProductCache(client *redis.Client, logger zerolog.Logger) *ProductCache {
	return &ProductCache{client: client, logger: logger}
}

func (c *ProductCache) Get(ctx context.Context, criteria string) (*ports.ProductDetail, bool) {
	raw, err := c.client.Get(ctx, key(criteria)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("product cache read failed")
		}
		return nil, false
	}

	var detail ports.ProductDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, false
	}
	return &detail, true
}

// Set caches the detail under every criteria that resolves to it: id,
// slug and title.
func (c *ProductCache) Set(ctx context.Context, detail *ports.ProductDetail) {
	raw, err := json.Marshal(detail)
	if err != nil {
		return
	}
	for _, k := range []string{detail.ID, detail.Slug, detail.Title} {
		if err := c.client.Set(ctx, key(k), raw, cacheTTL).Err(); err != nil {
			c.logger.Warn().Err(err).Msg("product cache write failed")
			return
		}
	}
}

func (c *ProductCache) Invalidate(ctx context.Context, keys ...string) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if err := c.client.Del(ctx, key(k)).Err(); err != nil {
			c.logger.Warn().Err(err).Msg("product cache invalidation failed")
		}
	}
}

func key(criteria string) string {
	return "product:" + strings.ToLower(criteria)
}
