package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

const (
	defaultPoolSize   = 10
	connectionTimeout = 5 * time.Second
)

// RedisCache is a ResultCache over redis, shared across instances. Backend
// failures degrade to cache misses: a recommendation is always recomputable,
// so no redis error ever surfaces to the caller as a request failure.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
	errs   atomic.Int64
}

// RedisConfig holds the redis connection settings for the result cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisCache connects to redis and returns the shared result cache.
// The connection is verified up front so a misconfigured address fails the
// process at startup rather than silently degrading forever.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: defaultPoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
		logger: slog.Default().With("component", "result-cache"),
	}, nil
}

// Get fetches and decodes the cached result for key. Backend and decode
// failures count as misses; a corrupt entry is deleted so it cannot keep
// poisoning lookups.
func (r *RedisCache) Get(ctx context.Context, key string) (*domain.RecommendationResult, bool, error) {
	payload, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		r.errs.Add(1)
		r.logger.Warn("cache get failed, treating as miss", "error", err)
		return nil, false, nil
	}

	var result domain.RecommendationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		r.errs.Add(1)
		r.logger.Warn("corrupt cache entry, deleting", "key", key, "error", err)
		r.client.Del(ctx, key)
		return nil, false, nil
	}

	r.hits.Add(1)
	return &result, true, nil
}

// Set encodes and stores the result under key with the configured TTL.
// Failures are logged and swallowed.
func (r *RedisCache) Set(ctx context.Context, key string, result *domain.RecommendationResult) error {
	if result == nil {
		return nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		r.errs.Add(1)
		r.logger.Warn("cache encode failed", "error", err)
		return nil
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.errs.Add(1)
		r.logger.Warn("cache set failed", "error", err)
	}
	return nil
}

// Stats returns the hit, miss, and error counters.
func (r *RedisCache) Stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load(), Errors: r.errs.Load()}
}

// Close releases the redis connection pool.
func (r *RedisCache) Close() error { return r.client.Close() }
