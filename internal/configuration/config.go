// Package configuration centralizes runtime settings for the recommendation
// engine: provider credentials, tier timeouts, cache and session policies,
// and server wiring. Settings load from the environment with sane defaults;
// a .env file is honored in development.
package configuration

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the full runtime configuration.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Tiers    TierConfig     `json:"tiers"`
	Primary  ProviderConfig `json:"primary"`
	Fallback ProviderConfig `json:"fallback"`
	Cache    CacheConfig    `json:"cache"`
	Sessions SessionConfig  `json:"sessions"`
	Temporal TemporalConfig `json:"temporal"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr            string        `json:"addr"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// TierConfig bounds each AI tier's wall-clock budget. The deterministic
// tier needs no budget: it is pure computation.
type TierConfig struct {
	PrimaryTimeout   time.Duration `json:"primary_timeout"`
	SecondaryTimeout time.Duration `json:"secondary_timeout"`
	RetryAttempts    int           `json:"retry_attempts"`
	RequestsPerSec   float64       `json:"requests_per_sec"`
	Burst            int           `json:"burst"`
}

// ProviderConfig holds one AI provider's endpoint and credentials.
type ProviderConfig struct {
	APIKey  string `json:"-"` // Sensitive, never serialized
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

// CacheConfig controls the shared result cache. With redis disabled the
// engine falls back to the in-process cache.
type CacheConfig struct {
	RedisEnabled  bool          `json:"redis_enabled"`
	RedisAddr     string        `json:"redis_addr"`
	RedisPassword string        `json:"-"` // Sensitive
	RedisDB       int           `json:"redis_db"`
	TTL           time.Duration `json:"ttl"`
}

// SessionConfig controls pending follow-up session retention.
type SessionConfig struct {
	TTL        time.Duration `json:"ttl"`
	SQLitePath string        `json:"sqlite_path"` // Empty keeps sessions in memory.
}

// TemporalConfig holds the workflow backend connection settings.
type TemporalConfig struct {
	HostPort  string `json:"host_port"`
	Namespace string `json:"namespace"`
	TaskQueue string `json:"task_queue"`
}

// Load reads configuration from the environment, applying defaults for
// everything unset. A .env file in the working directory is loaded first
// when present; its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:            envString("PUMPDRIVE_ADDR", ":8080"),
			ShutdownTimeout: envDuration("PUMPDRIVE_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Tiers: TierConfig{
			PrimaryTimeout:   envDuration("PUMPDRIVE_TIER1_TIMEOUT", 30*time.Second),
			SecondaryTimeout: envDuration("PUMPDRIVE_TIER2_TIMEOUT", 25*time.Second),
			RetryAttempts:    envInt("PUMPDRIVE_TIER_RETRIES", 2),
			RequestsPerSec:   envFloat("PUMPDRIVE_PROVIDER_RPS", 5),
			Burst:            envInt("PUMPDRIVE_PROVIDER_BURST", 10),
		},
		Primary: ProviderConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: envString("OPENAI_BASE_URL", ""),
			Model:   envString("OPENAI_MODEL", "gpt-4o"),
		},
		Fallback: ProviderConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:  envString("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		},
		Cache: CacheConfig{
			RedisEnabled:  envBool("PUMPDRIVE_REDIS_ENABLED", false),
			RedisAddr:     envString("PUMPDRIVE_REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("PUMPDRIVE_REDIS_PASSWORD"),
			RedisDB:       envInt("PUMPDRIVE_REDIS_DB", 0),
			TTL:           envDuration("PUMPDRIVE_CACHE_TTL", 24*time.Hour),
		},
		Sessions: SessionConfig{
			TTL:        envDuration("PUMPDRIVE_SESSION_TTL", 30*time.Minute),
			SQLitePath: envString("PUMPDRIVE_SQLITE_PATH", ""),
		},
		Temporal: TemporalConfig{
			HostPort:  envString("TEMPORAL_HOST_PORT", "localhost:7233"),
			Namespace: envString("TEMPORAL_NAMESPACE", "default"),
			TaskQueue: envString("TEMPORAL_TASK_QUEUE", "pumpdrive-recommendations"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot serve requests.
func (c *Config) Validate() error {
	if c.Tiers.PrimaryTimeout <= 0 || c.Tiers.SecondaryTimeout <= 0 {
		return fmt.Errorf("tier timeouts must be positive, got %s and %s",
			c.Tiers.PrimaryTimeout, c.Tiers.SecondaryTimeout)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.Cache.TTL)
	}
	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %s", c.Sessions.TTL)
	}
	if c.Tiers.RetryAttempts < 1 {
		return fmt.Errorf("tier retry attempts must be at least 1, got %d", c.Tiers.RetryAttempts)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
