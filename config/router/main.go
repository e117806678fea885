package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/viewmark/viewmark/internal/log"
	apperrors "github.com/viewmark/viewmark/pkg/errors"
	"github.com/viewmark/viewmark/pkg/ratelimit"
	"github.com/viewmark/viewmark/pkg/utils"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Cache interface {
	Ping(ctx context.Context) error
}

// redisBacked is satisfied by caches that can lend their client to the
// shared rate limiter.
type redisBacked interface {
	GetClient() *redis.Client
}

type RouterService struct {
	engine         *gin.Engine
	server         *http.Server
	logger         *log.Logger
	edge           EdgePolicy
	requestTimeout time.Duration
	registry       *prometheus.Registry

	rateLimiter ratelimit.RateLimiter
	// Both maps are keyed by keyForPathAndMethod.
	handlerToControllerMap map[string]*RESTController
	rateLimitOverrides     map[string]ratelimit.RateLimiter
}

type RouterConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
	// TracingService enables otelgin spans under this service name.
	TracingService string
	// Edge defaults to EdgePolicyFromEnv.
	Edge *EdgePolicy
}

func CreateRouterService(logger *log.Logger, cache Cache, routerConfig *RouterConfig) *RouterService {
	if mode := utils.GetEnvTrimmed("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	edge := EdgePolicyFromEnv()
	if routerConfig.Edge != nil {
		edge = *routerConfig.Edge
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.HandleMethodNotAllowed = true
	engine.RedirectTrailingSlash = true

	if routerConfig.TracingService != "" {
		engine.Use(otelgin.Middleware(routerConfig.TracingService))
		logger.Info("Tracing middleware enabled", "service", routerConfig.TracingService)
	}

	if err := engine.SetTrustedProxies(edge.TrustedProxies); err != nil {
		logger.Error("Invalid TRUSTED_PROXIES; ClientIP falls back to RemoteAddr", "error", err)
		_ = engine.SetTrustedProxies(nil)
	}

	rs := &RouterService{
		engine:                 engine,
		logger:                 logger,
		edge:                   edge,
		requestTimeout:         routerConfig.RequestTimeout,
		handlerToControllerMap: make(map[string]*RESTController),
		rateLimitOverrides:     make(map[string]ratelimit.RateLimiter),
	}

	rs.rateLimiter = newDefaultLimiter(logger, routerConfig, redisClientOf(cache))
	rs.mountMetrics()

	engine.Use(
		rs.securityHeadersMiddleware(),
		rs.maxBodySizeMiddleware(),
		rs.corsMiddleware(),
		rs.rateLimitMiddleware(),
		rs.timeoutMiddleware(),
		rs.correlationIDMiddleware(),
		rs.loggerInjectionMiddleware(),
		rs.requestLoggingMiddleware(),
	)

	engine.NoRoute(rs.fallback(http.StatusNotFound, apperrors.StatusNotFound, "Route not found", "Not found"))
	engine.NoMethod(rs.fallback(http.StatusMethodNotAllowed, apperrors.StatusMethodNotAllowed, "Method not allowed", "Method not allowed"))

	// Timeouts live on the server because gin.Context must not be shared
	// with a watchdog goroutine.
	rs.server = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       routerConfig.RequestTimeout,
		WriteTimeout:      routerConfig.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Router service initialized",
		"trusted_proxies", len(edge.TrustedProxies),
		"cors_origins", len(edge.AllowedOrigins),
		"max_body_bytes", edge.MaxBodyBytes,
	)
	return rs
}

func redisClientOf(cache Cache) *redis.Client {
	if backed, ok := cache.(redisBacked); ok {
		return backed.GetClient()
	}
	return nil
}

// fallback answers unmatched routes. Public /api paths get the {"error"}
// shape; everything else keeps the {code, data, message} envelope.
func (routerService *RouterService) fallback(status, code int, envelopeMessage, apiMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		routerService.logger.WithCorrelationID(c.Request.Context()).Warn(envelopeMessage,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if isPublicAPIPath(c.Request.URL.Path) {
			c.JSON(status, ErrorBody(status, apiMessage).ToJSON())
			return
		}
		c.JSON(status, ErrorResult(code, envelopeMessage, nil).ToJSON())
	}
}

func isPublicAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

func (routerService *RouterService) GetEngine() *gin.Engine {
	return routerService.engine
}

func (routerService *RouterService) MountController(controller *RESTController) {
	controller.prepare(routerService, controller)

	routerService.logger.Info("Controller mounted",
		"name", controller.name,
		"path", controller.mountPoint,
		"handlers", controller.handlerCount,
	)
}

// RunHTTPServer blocks until the server stops. A graceful Shutdown is not
// an error.
func (routerService *RouterService) RunHTTPServer() error {
	routerService.server.Addr = ":" + routerService.edge.Port
	routerService.logger.Info("Starting HTTP server", "addr", routerService.server.Addr)

	if err := routerService.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", routerService.server.Addr, err)
	}
	return nil
}

func (routerService *RouterService) Shutdown(ctx context.Context) error {
	routerService.logger.Info("Draining HTTP server")
	return routerService.server.Shutdown(ctx)
}

func (routerService *RouterService) Cleanup() {
	if routerService.rateLimiter == nil {
		return
	}
	if err := routerService.rateLimiter.Close(); err != nil {
		routerService.logger.Error("Failed to close rate limiter", "error", err)
	}
}
