// Package config loads application settings from an optional YAML file and
// then applies environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cs121287/zen/internal/engine"
)

// Config is the full application configuration.
type Config struct {
	Garden  engine.Config `yaml:"garden"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Entropy EntropyConfig `yaml:"entropy"`

	LogLevel    string `yaml:"logLevel"`    // debug, info, warn, error
	Parallelism int    `yaml:"parallelism"` // Batch workers; 0 = GOMAXPROCS
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port        int           `yaml:"port"`
	CORSOrigins []string      `yaml:"corsOrigins"` // Added to the localhost defaults
	RateLimit   int           `yaml:"rateLimit"`   // Generations per window per client
	RateWindow  time.Duration `yaml:"rateWindow"`
	MaxWidth    int           `yaml:"maxWidth"` // Largest garden a request may ask for
	MaxHeight   int           `yaml:"maxHeight"`
}

// StorageConfig locates the run catalog. An empty path disables it.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// EntropyConfig configures the seed source for unseeded requests.
type EntropyConfig struct {
	RandomOrgKey string `yaml:"randomOrgKey"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Garden: engine.DefaultConfig(),
		Server: ServerConfig{
			Port:       8080,
			RateLimit:  60,
			RateWindow: time.Minute,
			MaxWidth:   400,
			MaxHeight:  200,
		},
		LogLevel: "info",
	}
}

// Load reads path (if non-empty), applies environment overrides, and validates
// the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML from %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides file values with ZEN_* variables. CORS_ORIGINS and
// RANDOM_ORG_KEY are read without the prefix.
func applyEnv(cfg *Config) {
	cfg.Garden.Width = envIntOrDefault("ZEN_WIDTH", cfg.Garden.Width)
	cfg.Garden.Height = envIntOrDefault("ZEN_HEIGHT", cfg.Garden.Height)
	cfg.Garden.Seed = envInt64OrDefault("ZEN_SEED", cfg.Garden.Seed)
	cfg.Garden.FlowAttempts = envIntOrDefault("ZEN_FLOW_ATTEMPTS", cfg.Garden.FlowAttempts)
	cfg.Server.Port = envIntOrDefault("ZEN_PORT", cfg.Server.Port)
	cfg.Server.RateLimit = envIntOrDefault("ZEN_RATE_LIMIT", cfg.Server.RateLimit)
	cfg.Storage.Path = envOrDefault("ZEN_DB", cfg.Storage.Path)
	cfg.Entropy.RandomOrgKey = envOrDefault("RANDOM_ORG_KEY", cfg.Entropy.RandomOrgKey)
	cfg.LogLevel = envOrDefault("ZEN_LOG_LEVEL", cfg.LogLevel)
	cfg.Parallelism = envIntOrDefault("ZEN_PARALLELISM", cfg.Parallelism)

	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.Server.CORSOrigins = append(cfg.Server.CORSOrigins, origin)
			}
		}
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if err := c.Garden.Validate(); err != nil {
		return err
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server rate limit must be positive, got %d", c.Server.RateLimit)
	}
	if c.Server.RateWindow <= 0 {
		return fmt.Errorf("server rate window must be positive, got %s", c.Server.RateWindow)
	}
	if c.Server.MaxWidth < engine.MinWidth || c.Server.MaxHeight < engine.MinHeight {
		return fmt.Errorf("server max garden %dx%d below minimum %dx%d",
			c.Server.MaxWidth, c.Server.MaxHeight, engine.MinWidth, engine.MinHeight)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envInt64OrDefault(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}
