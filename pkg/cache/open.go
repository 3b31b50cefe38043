package cache

import (
	"context"

	"github.com/matzehuels/texbox/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend  string
	Dir      string
	RedisURL string
	MongoURI string
	// Prefix namespaces Redis keys.
	Prefix string
}

// Open returns the backend named by cfg.Backend. An empty name selects the
// file cache when Dir is set and no cache otherwise.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "":
		if cfg.Dir == "" {
			return NewNullCache(), nil
		}
		return NewFileCache(cfg.Dir)
	case BackendFile:
		if cfg.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "file cache needs a directory")
		}
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, RedisConfig{URL: cfg.RedisURL, Prefix: cfg.Prefix})
	case BackendMongo:
		return NewMongoCache(ctx, MongoConfig{URI: cfg.MongoURI})
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (must be one of: file, redis, mongo, none)", cfg.Backend)
}
