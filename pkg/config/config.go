// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration for the server, cache, logging and the feed collection

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"feedreader/core/domain"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Log contains logger configuration
	Log LogConfig

	// Reader contains page configuration
	Reader ReaderConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests per second allowed per client IP
	RateLimit int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string
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

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string
}

// ReaderConfig holds feed reader page configuration
type ReaderConfig struct {
	// FeedsFile is an optional YAML file listing the feed collection
	FeedsFile string

	// LoadTimeout bounds how long a caller waits for a feed load to complete
	LoadTimeout time.Duration

	// FullContent renders each entry's sanitised body under its snippet
	FullContent bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			RateLimit: getEnvAsIntOrDefault("RATE_LIMIT", 20),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "feedreader-cache.db"),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
		Reader: ReaderConfig{
			FeedsFile:   getEnvOrDefault("FEEDS_FILE", ""),
			LoadTimeout: getEnvAsDurationOrDefault("LOAD_TIMEOUT", 5*time.Second),
			FullContent: getEnvAsBoolOrDefault("READER_FULL_CONTENT", false),
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

// getEnvAsBoolOrDefault returns the environment variable as bool or a default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("5s") or plain seconds
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 1 {
		return errors.New("rate limit must be at least 1 request per second")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLitePath == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Reader.LoadTimeout <= 0 {
		return errors.New("load timeout must be positive")
	}

	return nil
}

// feedsFile is the YAML layout of FEEDS_FILE
type feedsFile struct {
	Feeds []domain.FeedDescriptor `yaml:"feeds"`
}

// LoadFeeds reads the feed collection from path. An empty path yields the
// built-in collection. The file's collection is returned as written, so an
// invalid file is still loaded and left for the checks to report.
func LoadFeeds(path string) (domain.FeedCollection, error) {
	if path == "" {
		return domain.DefaultFeeds(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}

	var file feedsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse feeds file %s: %w", path, err)
	}

	return domain.FeedCollection(file.Feeds), nil
}

// Feeds loads the collection named by the reader configuration
func (c *Config) Feeds() (domain.FeedCollection, error) {
	return LoadFeeds(c.Reader.FeedsFile)
}
