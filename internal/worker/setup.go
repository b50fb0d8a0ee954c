package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/cache"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/configuration"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/llm"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/orchestrator"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/storage"
)

// InitializeEngine assembles the recommendation engine from configuration:
// both AI transports with retry and rate limiting, the result cache, and
// the session store. The returned cleanup releases held connections.
//
// A tier with no API key is skipped rather than failing startup: the engine
// degrades to the remaining tiers, and a deployment with no keys at all
// still serves deterministic recommendations.
func InitializeEngine(ctx context.Context, cfg *configuration.Config) (*orchestrator.Engine, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var primary llm.Collaborator
	if cfg.Primary.APIKey != "" {
		transport, err := llm.NewOpenAITransport(llm.OpenAIConfig{
			APIKey:  cfg.Primary.APIKey,
			BaseURL: cfg.Primary.BaseURL,
			Model:   cfg.Primary.Model,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("primary transport: %w", err)
		}
		primary = buildCollaborator(transport, cfg, cfg.Tiers.PrimaryTimeout)
	}

	var secondary llm.Collaborator
	if cfg.Fallback.APIKey != "" {
		transport, err := llm.NewAnthropicTransport(llm.AnthropicConfig{
			APIKey: cfg.Fallback.APIKey,
			Model:  cfg.Fallback.Model,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("secondary transport: %w", err)
		}
		secondary = buildCollaborator(transport, cfg, cfg.Tiers.SecondaryTimeout)
	}

	var results cache.ResultCache
	if cfg.Cache.RedisEnabled {
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect result cache: %w", err)
		}
		cleanups = append(cleanups, func() { redisCache.Close() })
		results = redisCache
	} else {
		results = cache.NewMemoryCache(cfg.Cache.TTL)
	}

	var sessions orchestrator.SessionStore
	if cfg.Sessions.SQLitePath != "" {
		store, err := storage.NewSQLiteSessionStore(cfg.Sessions.SQLitePath, cfg.Sessions.TTL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		cleanups = append(cleanups, func() { store.Close() })
		sessions = store
	} else {
		sessions = orchestrator.NewMemorySessionStore(cfg.Sessions.TTL)
	}

	engine := orchestrator.New(primary, secondary, results, sessions,
		orchestrator.WithTierTimeouts(cfg.Tiers.PrimaryTimeout, cfg.Tiers.SecondaryTimeout))

	slog.Info("engine assembled",
		"primaryTier", primary != nil,
		"secondaryTier", secondary != nil,
		"redisCache", cfg.Cache.RedisEnabled,
		"durableSessions", cfg.Sessions.SQLitePath != "")
	return engine, cleanup, nil
}

// buildCollaborator decorates a transport with rate limiting and retry and
// wraps it in a client.
func buildCollaborator(transport llm.Transport, cfg *configuration.Config, timeout time.Duration) llm.Collaborator {
	decorated := llm.WithRetry(
		llm.WithRateLimit(transport, cfg.Tiers.RequestsPerSec, cfg.Tiers.Burst),
		cfg.Tiers.RetryAttempts)
	return llm.NewClient(decorated, llm.WithCallTimeout(timeout))
}
