package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/query-service/internal/infrastructure/config"
)

// QueryCacheFactory creates query caches based on configuration
type QueryCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// QueryCacheFactoryOption is a functional option for configuring the factory
type QueryCacheFactoryOption func(*QueryCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) QueryCacheFactoryOption {
	return func(f *QueryCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) QueryCacheFactoryOption {
	return func(f *QueryCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewQueryCacheFactory creates a new factory
func NewQueryCacheFactory(cfg config.RedisConfig, opts ...QueryCacheFactoryOption) *QueryCacheFactory {
	f := &QueryCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache creates a query cache based on the configuration. When Redis
// is disabled it returns the noop cache; when Redis is unavailable it falls
// back to an in-memory cache if fallback is allowed.
func (f *QueryCacheFactory) CreateCache() (QueryCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("query cache disabled")
		return NoopQueryCache{}, nil
	}

	redisCache, err := NewRedisQueryCache(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis query cache")
		return redisCache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for query cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory query cache. "+
		"Cached responses will not be shared across instances.",
		zap.Error(err),
	)
	return NewInMemoryQueryCache(), nil
}
