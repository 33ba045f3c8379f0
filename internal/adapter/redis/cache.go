// Package redis provides a shared geocode cache so that several service
// replicas reuse each other's Nominatim lookups.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/travel-query-service/internal/adapter/nominatim"
	"github.com/couchcryptid/travel-query-service/internal/domain"
	"github.com/couchcryptid/travel-query-service/internal/observability"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "travelq:geocode:v1:"

// NewClient parses a redis:// URL and verifies the connection.
func NewClient(ctx context.Context, rawURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// GeocodeCache wraps a Geocoder with a Redis-backed cache. Redis failures
// are logged and fall through to the wrapped geocoder.
type GeocodeCache struct {
	inner   domain.Geocoder
	client  goredis.Cmdable
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewGeocodeCache creates a Redis cache decorator around a geocoder.
func NewGeocodeCache(inner domain.Geocoder, client goredis.Cmdable, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *GeocodeCache {
	return &GeocodeCache{
		inner:   inner,
		client:  client,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func (c *GeocodeCache) Search(ctx context.Context, query string, limit int) ([]domain.GeocodeResult, error) {
	key := keyPrefix + nominatim.CacheKey(query, limit)

	if results, ok := c.lookup(ctx, key); ok {
		c.metrics.GeocodeCache.WithLabelValues("redis", "hit").Inc()
		return results, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("redis", "miss").Inc()

	results, err := c.inner.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		c.store(ctx, key, results)
	}
	return results, nil
}

func (c *GeocodeCache) lookup(ctx context.Context, key string) ([]domain.GeocodeResult, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Warn("redis geocode lookup failed", "key", key, "error", err)
		}
		return nil, false
	}

	var results []domain.GeocodeResult
	if err := json.Unmarshal(data, &results); err != nil {
		c.logger.Warn("discarding corrupt geocode cache entry", "key", key, "error", err)
		return nil, false
	}
	return results, true
}

func (c *GeocodeCache) store(ctx context.Context, key string, results []domain.GeocodeResult) {
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn("encode geocode cache entry", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("redis geocode store failed", "key", key, "error", err)
	}
}
