package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lknik/infoop-exposure-matrix/internal/metrics"
)

// CacheService is a cache-aside layer for operation detail lookups. It uses
// Redis when configured and reachable, otherwise an in-process cache.
type CacheService struct {
	rdb    *redis.Client
	local  *cache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCacheService creates a CacheService. If redisURL is empty or the
// connection fails, it falls back to an in-process cache.
func NewCacheService(redisURL string, ttl time.Duration, logger zerolog.Logger) *CacheService {
	logger = logger.With().Str("component", "cache").Logger()
	fallback := &CacheService{local: cache.New(ttl, 2*ttl), ttl: ttl, logger: logger}

	if redisURL == "" {
		logger.Info().Msg("redis: no URL configured, using in-process cache")
		return fallback
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis: invalid URL, using in-process cache")
		return fallback
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis: connection failed, using in-process cache")
		_ = rdb.Close()
		return fallback
	}

	logger.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb, ttl: ttl, logger: logger}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetOperation retrieves a cached operation detail. Returns nil on a miss.
func (c *CacheService) GetOperation(ctx context.Context, operationID int64) ([]byte, error) {
	data, err := c.get(ctx, operationKey(operationID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		metrics.CacheMisses.Inc()
		return nil, nil
	}
	metrics.CacheHits.Inc()
	return data, nil
}

// SetOperation stores an operation detail.
func (c *CacheService) SetOperation(ctx context.Context, operationID int64, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.set(ctx, operationKey(operationID), b)
}

// InvalidateOperation drops an operation detail after its channels change.
func (c *CacheService) InvalidateOperation(ctx context.Context, operationID int64) error {
	key := operationKey(operationID)
	if c.rdb == nil {
		c.local.Delete(key)
		return nil
	}
	return c.rdb.Del(ctx, key).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *CacheService) get(ctx context.Context, key string) ([]byte, error) {
	if c.rdb == nil {
		if v, ok := c.local.Get(key); ok {
			return v.([]byte), nil
		}
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

func (c *CacheService) set(ctx context.Context, key string, b []byte) error {
	if c.rdb == nil {
		c.local.Set(key, b, cache.DefaultExpiration)
		return nil
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func operationKey(operationID int64) string {
	return fmt.Sprintf("operation:%d", operationID)
}
