// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package: caching, HTTP fetching and logging.
//
// The infrastructure package is organized by technical concern:
//
//   - cache/memory: in-process cache on patrickmn/go-cache
//   - cache/redis: shared cache on go-redis
//   - cache/sqlite: persistent cache on mattn/go-sqlite3
//   - http/standard: net/http client with retry logic and request logging
//   - logger/structured: logrus-backed structured logger
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache(time.Hour, 10*time.Minute)
//	err := cache.Set(ctx, "feed:https://example.com/rss", data, time.Hour)
//	value, err := cache.Get(ctx, "feed:https://example.com/rss")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(30*time.Second, standard.WithLogger(logger))
//	resp, err := client.Get(ctx, "https://example.com/feed")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "debug", Format: "json"})
//	logger.Info("Feed loaded", map[string]interface{}{
//	    "feed_id": 0,
//	    "entries": 12,
//	})
package infrastructure
