package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viewmark/viewmark/pkg/ratelimit"
)

func TestCreateRateLimiter_InMemoryWithoutCache(t *testing.T) {
	container := NewFactoryContainer(nil, nil)

	limiter := container.RateLimiterFactory.CreateRateLimiter("submit-email", 30, time.Minute)

	_, ok := limiter.(*ratelimit.InMemoryRateLimiter)
	assert.True(t, ok)

	requests, window := limiter.GetLimitDetails()
	assert.Equal(t, 30, requests)
	assert.Equal(t, time.Minute, window)
}
