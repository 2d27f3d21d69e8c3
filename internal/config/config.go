// Package config provides configuration management for Arcana.
// It loads settings from environment variables with the ARCANA_ prefix
// and provides sensible defaults for all configuration options.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration settings for the Arcana application.
type Config struct {
	Storage     StorageConfig
	Interpreter InterpreterConfig
	Resolver    ResolverConfig
	Session     SessionConfig
}

// StorageConfig contains session store configuration.
type StorageConfig struct {
	StorageEngine string // Storage engine type: memory, sqlite, postgres (default: memory)
	DataPath      string // Path to the sqlite data directory (default: ./data)
	PostgresDSN   string // Postgres connection string, required for the postgres engine
}

// InterpreterConfig contains interpretation provider configuration.
type InterpreterConfig struct {
	Provider        string        // Interpretation provider: anthropic, openai (default: anthropic)
	AnthropicAPIKey string        // Anthropic API key
	AnthropicModel  string        // Anthropic model name (default: claude-haiku-4-5-20251001)
	OpenAIAPIKey    string        // OpenAI API key
	OpenAIModel     string        // OpenAI model name (default: gpt-4o-mini)
	Timeout         time.Duration // Per-call timeout (default: 60s)
}

// ResolverConfig contains card-name resolution tuning.
type ResolverConfig struct {
	Threshold int // Minimum fuzzy similarity score 1-100 (default: 75)
	MaxCards  int // Maximum cards accepted per combination (default: 10)
}

// SessionConfig contains session lifecycle and entitlement settings.
type SessionConfig struct {
	TTL           time.Duration // Session expiry horizon (default: 24h)
	AllowedUsers  []string      // User ids exempt from payment
	TrialReadings int           // Free readings before payment is required (default: 1)
	RatePerMinute int           // Per-user request budget per minute (default: 5)
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. All environment variables use the ARCANA_ prefix.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			StorageEngine: getEnv("ARCANA_STORAGE_ENGINE", "memory"),
			DataPath:      getEnv("ARCANA_DATA_PATH", "./data"),
			PostgresDSN:   getEnv("ARCANA_POSTGRES_DSN", ""),
		},
		Interpreter: InterpreterConfig{
			Provider:        getEnv("ARCANA_INTERPRETER_PROVIDER", "anthropic"),
			AnthropicAPIKey: getEnv("ARCANA_ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getEnv("ARCANA_ANTHROPIC_MODEL", "claude-haiku-4-5-20251001"),
			OpenAIAPIKey:    getEnv("ARCANA_OPENAI_API_KEY", ""),
			OpenAIModel:     getEnv("ARCANA_OPENAI_MODEL", "gpt-4o-mini"),
			Timeout:         getEnvDuration("ARCANA_INTERPRETER_TIMEOUT", 60*time.Second),
		},
		Resolver: ResolverConfig{
			Threshold: getEnvInt("ARCANA_RESOLVE_THRESHOLD", 75),
			MaxCards:  getEnvInt("ARCANA_RESOLVE_MAX_CARDS", 10),
		},
		Session: SessionConfig{
			TTL:           getEnvDuration("ARCANA_SESSION_TTL", 24*time.Hour),
			AllowedUsers:  getEnvList("ARCANA_ALLOWED_USERS"),
			TrialReadings: getEnvInt("ARCANA_TRIAL_READINGS", 1),
			RatePerMinute: getEnvInt("ARCANA_RATE_PER_MINUTE", 5),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.StorageEngine {
	case "memory", "sqlite":
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("config: ARCANA_POSTGRES_DSN is required for the postgres engine")
		}
	default:
		return fmt.Errorf("config: unknown storage engine %q", c.Storage.StorageEngine)
	}
	if c.Resolver.Threshold < 1 || c.Resolver.Threshold > 100 {
		return fmt.Errorf("config: resolve threshold must be within 1-100, got %d", c.Resolver.Threshold)
	}
	if c.Resolver.MaxCards < 1 {
		return fmt.Errorf("config: resolve max cards must be positive, got %d", c.Resolver.MaxCards)
	}
	return nil
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value.
// If the environment variable exists but cannot be parsed as an integer,
// it returns the default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns a
// default value. Unparseable values fall back to the default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList retrieves a comma-separated environment variable as a slice.
// Empty entries are dropped.
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
