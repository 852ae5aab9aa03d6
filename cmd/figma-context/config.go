package main

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	figmacontext "github.com/hellenic-development/figma-context"
	"github.com/hellenic-development/figma-context/pkg/cache"
	"github.com/hellenic-development/figma-context/pkg/logging"
)

// Cache backends.
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendSQLite = "sqlite"
)

// Config is the CLI configuration: loaded from an optional YAML file, then
// overridden by flags.
type Config struct {
	Token     string      `yaml:"token"`
	Framework string      `yaml:"framework"`
	Log       LogConfig   `yaml:"log"`
	Cache     CacheConfig `yaml:"cache"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Validate validates the logging configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.In("", "debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.In("", "text", "json")),
	)
}

// CacheConfig holds cache store configuration.
type CacheConfig struct {
	Backend    string `yaml:"backend"`
	Path       string `yaml:"path"`
	TTL        int    `yaml:"ttl"` // seconds
	MaxEntries int    `yaml:"maxEntries"`
}

// Validate validates the cache configuration.
func (c *CacheConfig) Validate() error {
	if c.Backend == "" {
		c.Backend = CacheBackendNone
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.In(CacheBackendNone, CacheBackendMemory, CacheBackendSQLite)),
		validation.Field(&c.TTL, validation.Min(0)),
		validation.Field(&c.MaxEntries, validation.Min(0)),
	); err != nil {
		return err
	}
	if c.Backend == CacheBackendSQLite && c.Path == "" {
		return fmt.Errorf("cache: backend is %q but path is empty", CacheBackendSQLite)
	}
	return nil
}

// Enabled reports whether a cache store should be wired.
func (c *CacheConfig) Enabled() bool {
	return c.Backend != "" && c.Backend != CacheBackendNone
}

// Validate validates the whole configuration.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return c.Cache.Validate()
}

// NewDefaultConfig returns a Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Cache: CacheConfig{
			Backend:    CacheBackendNone,
			TTL:        300,
			MaxEntries: cache.DefaultMaxEntries,
		},
	}
}

// Store builds the configured cache store, or nil when caching is off.
func (c *Config) Store() (cache.Store, error) {
	switch c.Cache.Backend {
	case CacheBackendMemory:
		return cache.NewMemory(c.Cache.MaxEntries)
	case CacheBackendSQLite:
		return cache.NewSQLite(c.Cache.Path), nil
	default:
		return nil, nil
	}
}

// ExtractionOptions maps the configuration onto per-request options.
func (c *Config) ExtractionOptions(metrics bool) figmacontext.Options {
	return figmacontext.Options{
		EnableCaching:            c.Cache.Enabled(),
		CacheTTL:                 c.Cache.TTL,
		EnablePerformanceMetrics: metrics,
	}
}

// LoggerConfig maps the configuration onto the logging factory.
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if c.Log.Level != "" {
		cfg.Level = logging.Level(c.Log.Level)
	}
	if c.Log.Format != "" {
		cfg.Format = logging.Format(c.Log.Format)
	}
	return cfg
}
