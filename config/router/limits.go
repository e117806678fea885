package router

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/pkg/ratelimit"
)

// newDefaultLimiter backs the router-wide budget with Redis when the cache
// answers a ping and with the in-memory bucket otherwise.
func newDefaultLimiter(logger *log.Logger, cfg *RouterConfig, client *redis.Client) ratelimit.RateLimiter {
	backend := "memory"
	if client != nil {
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable; default rate limiter runs in memory", "error", err)
			client = nil
		} else {
			backend = "redis"
		}
	}

	logger.Info("Default rate limiter ready",
		"backend", backend,
		"requests", cfg.RateLimitRequests,
		"window", cfg.RateLimitWindow,
	)

	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: cfg.RateLimitRequests,
		Window:   cfg.RateLimitWindow,
		Redis:    client,
		Logger:   logger,
	})
}

// limiterFor picks the handler's own limiter, then the default. ok is false
// for a matched route that no controller owns.
func (routerService *RouterService) limiterFor(c *gin.Context) (limiter ratelimit.RateLimiter, ok bool) {
	route := c.FullPath()
	if route == "" {
		return routerService.rateLimiter, true
	}

	key := routerService.keyForPathAndMethod(route, c.Request.Method)
	if _, owned := routerService.handlerToControllerMap[key]; !owned {
		return nil, false
	}

	if override, found := routerService.rateLimitOverrides[key]; found {
		return override, true
	}
	return routerService.rateLimiter, true
}

func (routerService *RouterService) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter, ok := routerService.limiterFor(c)
		if !ok {
			routerService.logger.Error("Route has no owning controller; was a handler registered outside MountController?",
				"route", c.FullPath(),
				"method", c.Request.Method,
			)
			c.AbortWithStatusJSON(http.StatusNotFound,
				NotFoundResult(fmt.Sprintf("There is no handler configured to handle any resource at the path %s", c.Request.URL.Path)).ToJSON())
			return
		}

		routerService.applyLimiter(c, limiter)
	}
}

// applyLimiter keys the budget by client IP. Limiter errors fail open.
func (routerService *RouterService) applyLimiter(c *gin.Context, limiter ratelimit.RateLimiter) {
	if limiter == nil {
		c.Next()
		return
	}

	clientIP := c.ClientIP()
	limit, window := limiter.GetLimitDetails()
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Window", window.String())

	limited, err := limiter.IsLimited("ratelimit:" + clientIP)
	if err != nil {
		routerService.logger.Error("Rate limiter error; allowing request", "error", err, "client_ip", clientIP)
		c.Next()
		return
	}
	if !limited {
		c.Next()
		return
	}

	retryAfter := retryAfterSeconds(window)
	routerService.logger.Warn("Rate limit exceeded", "client_ip", clientIP, "route", c.FullPath())
	c.Header("Retry-After", retryAfter)
	c.AbortWithStatusJSON(http.StatusTooManyRequests, TooManyRequestsResult(RateLimitResponse{
		Limit:      limit,
		Window:     window.String(),
		RetryAfter: retryAfter,
	}).ToJSON())
}

func retryAfterSeconds(window time.Duration) string {
	seconds := int(math.Ceil(window.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
