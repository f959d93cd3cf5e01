// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, and upstream environments

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Environments contains the upstream base URLs per deployment environment
	Environments Environments
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the allowed requests per second per client IP
	RateLimit float64

	// RateBurst is the rate limiter burst size
	RateBurst int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains file-backed cache configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds file-backed cache configuration
type SQLiteConfig struct {
	// Path is the cache database file path
	Path string
}

// Environment is the set of base URLs a request resolves to: the canonical
// content API, the public site, and the static origin this edge fronts.
type Environment struct {
	ContentAPIBase string
	SiteBase       string
	OriginBase     string
}

// Environments is the injected environment table. Which entry applies is
// derived from the inbound request's hostname: hosts containing
// TestHostMarker resolve to Test, everything else to Production.
type Environments struct {
	Production     Environment
	Test           Environment
	TestHostMarker string
}

// Resolve derives the environment for an inbound hostname. It is a pure
// function: unknown hosts deterministically fall back to production.
func (e Environments) Resolve(hostname string) Environment {
	if e.TestHostMarker != "" && strings.Contains(hostname, e.TestHostMarker) {
		return e.Test
	}
	return e.Production
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			RateLimit: getEnvAsFloatOrDefault("RATE_LIMIT", 50),
			RateBurst: getEnvAsIntOrDefault("RATE_BURST", 100),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_CACHE_PATH", "edge-cache.db"),
			},
		},
		Environments: Environments{
			Production: Environment{
				ContentAPIBase: getEnvOrDefault("CONTENT_API_BASE", "https://api-prod.copus.network"),
				SiteBase:       getEnvOrDefault("SITE_BASE", "https://copus.network"),
				OriginBase:     getEnvOrDefault("ORIGIN_BASE", "https://origin.copus.network"),
			},
			Test: Environment{
				ContentAPIBase: getEnvOrDefault("CONTENT_API_BASE_TEST", "https://api-test.copus.network"),
				SiteBase:       getEnvOrDefault("SITE_BASE_TEST", "https://test.copus.network"),
				OriginBase:     getEnvOrDefault("ORIGIN_BASE_TEST", "https://origin-test.copus.network"),
			},
			TestHostMarker: getEnvOrDefault("TEST_HOST_MARKER", "test."),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" && c.Cache.Type != "sqlite" {
		return errors.New("cache type must be 'redis', 'memory' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Environments.Production.ContentAPIBase == "" || c.Environments.Production.SiteBase == "" {
		return errors.New("production environment base URLs cannot be empty")
	}

	return nil
}
