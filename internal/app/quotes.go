/**
 * @description
 * Exchange-rate quote service. Fetches the USDT/VES sell price from Binance
 * P2P and caches it in Redis for a short TTL so the dashboard can poll
 * without hammering the third party. Redis is optional: without it every
 * call goes straight to the source.
 */
package app

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const quoteCacheKey = "crm:quote:usdt_ves"

// QuoteFetcher fetches the current quote from the external source.
type QuoteFetcher interface {
	FetchP2PPrice(ctx context.Context) (float64, error)
}

// QuoteCache stores a quote for a bounded lifetime.
type QuoteCache interface {
	Get(ctx context.Context, key string) (float64, bool, error)
	Set(ctx context.Context, key string, value float64, ttl time.Duration) error
}

// QuoteService serves the dashboard's exchange-rate card.
type QuoteService struct {
	fetcher QuoteFetcher
	cache   QuoteCache
	ttl     time.Duration
	logger  *slog.Logger
}

// NewQuoteService creates a quote service. cache may be nil.
func NewQuoteService(fetcher QuoteFetcher, cache QuoteCache, ttl time.Duration, logger *slog.Logger) *QuoteService {
	return &QuoteService{fetcher: fetcher, cache: cache, ttl: ttl, logger: logger}
}

// GetUSDTVESPrice returns the cached quote when fresh, otherwise fetches a
// new one and caches it. Cache failures are logged and ignored; the quote
// itself is the only hard dependency.
func (q *QuoteService) GetUSDTVESPrice(ctx context.Context) (float64, error) {
	if q.cache != nil {
		price, ok, err := q.cache.Get(ctx, quoteCacheKey)
		if err != nil {
			q.logger.Warn("quote cache read failed", "error", err)
		} else if ok {
			return price, nil
		}
	}

	price, err := q.fetcher.FetchP2PPrice(ctx)
	if err != nil {
		return 0, err
	}

	if q.cache != nil {
		if err := q.cache.Set(ctx, quoteCacheKey, price, q.ttl); err != nil {
			q.logger.Warn("quote cache write failed", "error", err)
		}
	}
	return price, nil
}

// RedisQuoteCache is the Redis-backed QuoteCache.
type RedisQuoteCache struct {
	client redis.UniversalClient
}

// NewRedisQuoteCache creates a Redis quote cache.
func NewRedisQuoteCache(client redis.UniversalClient) *RedisQuoteCache {
	return &RedisQuoteCache{client: client}
}

// Get reads a cached quote. The second return value reports a hit.
func (c *RedisQuoteCache) Get(ctx context.Context, key string) (float64, bool, error) {
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, err
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, err
	}
	return price, true, nil
}

// Set writes a quote with the given TTL.
func (c *RedisQuoteCache) Set(ctx context.Context, key string, value float64, ttl time.Duration) error {
	return c.client.Set(ctx, key, strconv.FormatFloat(value, 'f', -1, 64), ttl).Err()
}
