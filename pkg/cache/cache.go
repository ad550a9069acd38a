// Package cache stores rendered diagram artifacts.
//
// Rendering a diagram is cheap, but the CLI and the HTTP service render the
// same diagrams over and over, and PDF export shells out to rsvg-convert.
// Artifacts are therefore cached under keys derived from the normalized
// diagram options.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry below a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [NullCache]: stores nothing
//
// # Keys
//
// A [Keyer] turns an options hash and an output format into a cache key.
// [ScopedKeyer] prefixes every key, so several deployments can share one
// Redis instance.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value stored under key. A missing or expired entry is
	// reported with hit == false and a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// TTLArtifact is how long rendered artifacts stay cached. Artifacts are a pure
// function of their key, so the limit only bounds disk and memory use.
const TTLArtifact = 7 * 24 * time.Hour
