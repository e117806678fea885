package constants

import "time"

// RFC 3339 date-time format string.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// Default rate limiting configuration
const (
	DefaultRateLimitRequests      = 100
	DefaultRateLimitWindowMinutes = 1

	// SubmitEmailRateLimitRequests caps waitlist submissions per client per window.
	SubmitEmailRateLimitRequests = 30
	// TrackingRateLimitRequests caps analytics beacons per client per window.
	TrackingRateLimitRequests = 120
)

// DefaultRateLimitWindow returns the default rate limit window duration
func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}

// Capture form timings.
const (
	DefaultMinLoading     = time.Second
	DefaultSuccessDisplay = 3 * time.Second
	DefaultResetFade      = 300 * time.Millisecond
	DefaultSubmitTimeout  = 10 * time.Second
)

// SessionStorageKey is the key under which the analytics session id is cached.
const SessionStorageKey = "analytics_session_id"

// KnownSignupTTL bounds how long a registered address is remembered in the cache.
const KnownSignupTTL = 24 * time.Hour
