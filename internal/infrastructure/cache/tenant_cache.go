package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pedezap/backend/internal/domain/identity"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/pedezap/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// tenantKeyPrefix namespaces tenant lookups inside the shared Redis DB
const tenantKeyPrefix = "tenant:"

// RedisTenantCache caches resolved tenants in Redis. Every storefront
// request resolves a tenant, so this sits directly on the hot path.
type RedisTenantCache struct {
	client *redis.Client
	logger *zap.Logger
}

// RedisTenantCacheOption is a functional option for configuring the cache
type RedisTenantCacheOption func(*RedisTenantCache)

// WithTenantCacheLogger sets the logger for the cache
func WithTenantCacheLogger(logger *zap.Logger) RedisTenantCacheOption {
	return func(c *RedisTenantCache) {
		c.logger = logger
	}
}

// NewRedisClient creates a Redis client from configuration and verifies
// the connection.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// NewRedisTenantCache creates a cache over an existing Redis client.
// The caller retains ownership of the client and closes it.
func NewRedisTenantCache(client *redis.Client, opts ...RedisTenantCacheOption) *RedisTenantCache {
	cache := &RedisTenantCache{
		client: client,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get returns the cached tenant for the key, or shared.ErrNotFound on a
// miss.
func (c *RedisTenantCache) Get(ctx context.Context, key string) (*identity.Tenant, error) {
	data, err := c.client.Get(ctx, tenantKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read tenant cache: %w", err)
	}

	var tenant identity.Tenant
	if err := json.Unmarshal(data, &tenant); err != nil {
		// A corrupt entry is treated as a miss; the caller will refill it.
		c.logger.Warn("discarding corrupt tenant cache entry",
			zap.String("key", key),
			zap.Error(err))
		return nil, shared.ErrNotFound
	}

	return &tenant, nil
}

// Set stores the tenant under the key with the given TTL
func (c *RedisTenantCache) Set(ctx context.Context, key string, tenant *identity.Tenant, ttl time.Duration) error {
	data, err := json.Marshal(tenant)
	if err != nil {
		return fmt.Errorf("failed to marshal tenant: %w", err)
	}

	if err := c.client.Set(ctx, tenantKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write tenant cache: %w", err)
	}

	return nil
}

// Invalidate removes the given keys from the cache
func (c *RedisTenantCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = tenantKeyPrefix + key
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate tenant cache: %w", err)
	}

	return nil
}
