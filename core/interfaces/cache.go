// Package interfaces defines the contracts the feed reader core depends on.
// Implementations live under infrastructure/ and are injected at startup.
package interfaces

import (
	"context"
	"time"
)

// Cache stores serialized values by key.
// Implementations are in-memory (go-cache), Redis or SQLite.
//
// Example usage:
//
//	err := cache.Set(ctx, "feed:https://example.com/rss", data, time.Hour)
//	data, err := cache.Get(ctx, "feed:https://example.com/rss")
type Cache interface {
	// Get retrieves a value by key.
	// A missing or expired key is reported as an error.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	// A zero ttl means the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
