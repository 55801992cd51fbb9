// Package cache stores downloaded deck assets between runs.
//
// Remote inspiration images are fetched once and kept in a [Cache] so that
// re-exporting a deck does not hit the network again. Three backends exist:
//
//   - [FileCache]: JSON entry files under the user cache directory (CLI default)
//   - [RedisCache]: a shared Redis instance, selected with cache.redis_url
//   - [NullCache]: caching disabled (--no-cache)
//
// Only source assets are cached. Exported slides are never stored here.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DefaultAssetTTL is how long a downloaded asset stays fresh.
const DefaultAssetTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiration.
// Get reports a miss as (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// AssetKey returns the cache key for an image source (URL or path).
func AssetKey(source string) string {
	return "asset:" + Digest([]byte(source))
}

// Digest is the hex SHA-256 of b. Backends use it to derive storage names.
func Digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
