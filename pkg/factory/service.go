package factory

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/viewmark/viewmark/pkg/ratelimit"
)

type Cache interface {
	Ping(ctx context.Context) error
}

type RedisClientProvider interface {
	GetClient() *redis.Client
}

// RateLimiterFactory builds per-endpoint limiters that share one backend.
type RateLimiterFactory interface {
	CreateRateLimiter(scope string, requests int, window time.Duration) ratelimit.RateLimiter
}

type DefaultRateLimiterFactory struct {
	redis  *redis.Client
	logger ratelimit.Logger
}

// NewDefaultRateLimiterFactory uses Redis when cache exposes a client, else in-memory limiters.
func NewDefaultRateLimiterFactory(cache Cache, logger ratelimit.Logger) *DefaultRateLimiterFactory {
	var redisClient *redis.Client
	if cache != nil {
		if provider, ok := cache.(RedisClientProvider); ok {
			redisClient = provider.GetClient()
		}
	}

	return &DefaultRateLimiterFactory{
		redis:  redisClient,
		logger: logger,
	}
}

func (f *DefaultRateLimiterFactory) CreateRateLimiter(scope string, requests int, window time.Duration) ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Scope:    scope,
		Requests: requests,
		Window:   window,
		Redis:    f.redis,
		Logger:   f.logger,
	})
}

type FactoryContainer struct {
	RateLimiterFactory RateLimiterFactory
}

func NewFactoryContainer(cache Cache, logger ratelimit.Logger) *FactoryContainer {
	return &FactoryContainer{
		RateLimiterFactory: NewDefaultRateLimiterFactory(cache, logger),
	}
}
