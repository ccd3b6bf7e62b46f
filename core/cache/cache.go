package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"appointment-sync/core/config"
	"appointment-sync/core/constants"
	"appointment-sync/core/logger"
)

// Cache fronts the unified appointment listing. Reads are cheap but the
// three-store fan-in is not free, so the HTTP listing path is cached with a
// short TTL and invalidated on every mutating operation.
type Cache interface {
	GetUnifiedListing(ctx context.Context) ([]byte, bool)
	SetUnifiedListing(ctx context.Context, payload []byte) error
	InvalidateUnifiedListing(ctx context.Context) error
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

func NewCache(cfg config.RedisConfig) Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &redisCache{client: client}
}

func (c *redisCache) GetUnifiedListing(ctx context.Context) ([]byte, bool) {
	payload, err := c.client.Get(ctx, constants.RedisKeyUnifiedListing).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Cache:GetUnifiedListing:Error:", err)
		}
		return nil, false
	}
	return payload, true
}

func (c *redisCache) SetUnifiedListing(ctx context.Context, payload []byte) error {
	return c.client.Set(ctx, constants.RedisKeyUnifiedListing, payload, constants.UnifiedListingTTL).Err()
}

func (c *redisCache) InvalidateUnifiedListing(ctx context.Context) error {
	return c.client.Del(ctx, constants.RedisKeyUnifiedListing).Err()
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// NewNoop returns a cache that stores nothing. Used when Redis is not
// configured and by tests.
func NewNoop() Cache {
	return noopCache{}
}

type noopCache struct{}

func (noopCache) GetUnifiedListing(context.Context) ([]byte, bool) { return nil, false }
func (noopCache) SetUnifiedListing(context.Context, []byte) error  { return nil }
func (noopCache) InvalidateUnifiedListing(context.Context) error   { return nil }
func (noopCache) Ping(context.Context) error                       { return nil }
