package main

import (
	"strings"
	"testing"
)

func TestCacheConfig_EmptyBackendDefaultsNone(t *testing.T) {
	cfg := CacheConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty backend should pass: %v", err)
	}
	if cfg.Backend != CacheBackendNone {
		t.Errorf("backend = %q, want %q", cfg.Backend, CacheBackendNone)
	}
	if cfg.Enabled() {
		t.Error("none backend should not be enabled")
	}
}

func TestCacheConfig_SQLiteRequiresPath(t *testing.T) {
	cfg := CacheConfig{Backend: CacheBackendSQLite}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("sqlite backend without path should fail")
	}
	if !strings.Contains(err.Error(), "path is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCacheConfig_InvalidBackend(t *testing.T) {
	cfg := CacheConfig{Backend: "redis"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid backend should fail validation")
	}
}

func TestLogConfig_InvalidLevel(t *testing.T) {
	cfg := LogConfig{Level: "loud"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid level should fail validation")
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Cache.Enabled() {
		t.Error("caching should be off by default")
	}
}

func TestExtractionOptions(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Cache.Backend = CacheBackendMemory
	cfg.Cache.TTL = 600

	opts := cfg.ExtractionOptions(true)
	if !opts.EnableCaching {
		t.Error("expected caching enabled")
	}
	if opts.CacheTTL != 600 {
		t.Errorf("CacheTTL = %d, want 600", opts.CacheTTL)
	}
	if !opts.EnablePerformanceMetrics {
		t.Error("expected metrics enabled")
	}
}
