// Package cache stores laid out formulas and rendered artifacts.
//
// The pipeline caches two kinds of entries: the JSON box tree of a formula
// (keyed by its source and layout options) and each rendered artifact
// (keyed by the box hash and render options). Backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer]; [ScopedKeyer] prefixes them for
// multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLBox is the lifetime of a cached box tree. Layout is a pure function
	// of its key, so entries only expire to bound storage.
	TTLBox = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of a rendered artifact.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiration.
//
// Get reports a miss with hit=false and a nil error; errors are reserved
// for backend failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
