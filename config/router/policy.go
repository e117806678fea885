package router

import (
	"strconv"
	"strings"

	"github.com/viewmark/viewmark/pkg/utils"
)

const (
	defaultMaxBodyBytes int64 = 1 << 20
	defaultHSTSMaxAge   int64 = 365 * 24 * 60 * 60
	defaultAppPort            = "8080"
)

// EdgePolicy is the HTTP-facing behaviour that does not belong to any one
// controller. It is read from the environment once per RouterService.
type EdgePolicy struct {
	Port string
	// TrustedProxies nil means ClientIP always uses RemoteAddr.
	TrustedProxies []string
	MaxBodyBytes   int64
	// AllowedOrigins empty denies every cross-origin request.
	AllowedOrigins []string
	HSTS           HSTSPolicy
	MetricsEnabled bool
}

type HSTSPolicy struct {
	Enabled           bool
	MaxAge            int64
	IncludeSubdomains bool
}

func (p HSTSPolicy) header() string {
	value := "max-age=" + strconv.FormatInt(p.MaxAge, 10)
	if p.IncludeSubdomains {
		value += "; includeSubDomains"
	}
	return value
}

// EdgePolicyFromEnv reads APP_PORT, TRUSTED_PROXIES, MAX_REQUEST_BODY_BYTES,
// CORS_ALLOWED_ORIGIN, METRICS_ENABLED and the HSTS_* switches. HSTS
// defaults on only when APP_ENV names production.
func EdgePolicyFromEnv() EdgePolicy {
	appEnv := strings.ToLower(utils.GetEnvTrimmed("APP_ENV"))
	production := appEnv == "production" || appEnv == "prod"

	return EdgePolicy{
		Port:           utils.GetEnvTrimmedOrDefault("APP_PORT", defaultAppPort),
		TrustedProxies: splitProxyList(utils.GetEnvTrimmed("TRUSTED_PROXIES")),
		MaxBodyBytes:   int64(utils.GetEnvIntOrDefault("MAX_REQUEST_BODY_BYTES", int(defaultMaxBodyBytes))),
		AllowedOrigins: splitList(utils.GetEnvTrimmed("CORS_ALLOWED_ORIGIN")),
		MetricsEnabled: utils.GetEnvBool("METRICS_ENABLED", true),
		HSTS: HSTSPolicy{
			Enabled:           utils.GetEnvBool("HSTS_ENABLED", production),
			MaxAge:            int64(utils.GetEnvIntOrDefault("HSTS_MAX_AGE", int(defaultHSTSMaxAge))),
			IncludeSubdomains: utils.GetEnvBool("HSTS_INCLUDE_SUBDOMAINS", true),
		},
	}
}

func (p EdgePolicy) allowsOrigin(origin string) bool {
	for _, allowed := range p.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// splitProxyList turns "*" into both wildcard CIDRs.
func splitProxyList(raw string) []string {
	if raw == "*" {
		return []string{"0.0.0.0/0", "::/0"}
	}
	return splitList(raw)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
