package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/viewmark/viewmark/config/router"
	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/pkg/clock"
	"github.com/viewmark/viewmark/pkg/ratelimit"
	"gorm.io/gorm"
)

const healthChecksPerMinute = 10

type Cache interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Database int `json:"database"` // 1 = healthy, 0 = unhealthy
	Cache    int `json:"cache"`    // 1 = healthy, 0 = unhealthy/not configured
	Uptime   int `json:"uptime"`   // seconds
}

type MonitoringController struct {
	db        *gorm.DB
	logger    *log.Logger
	cache     Cache
	clock     clock.Clock
	startTime time.Time
}

// NewMonitoringController mounts GET /health. A nil limiter gets a private
// in-memory limiter of healthChecksPerMinute.
func NewMonitoringController(db *gorm.DB, logger *log.Logger, cache Cache, clk clock.Clock, limiter ratelimit.RateLimiter) *router.RESTController {
	if clk == nil {
		clk = clock.Real()
	}
	ctrl := &MonitoringController{
		db:        db,
		logger:    logger,
		cache:     cache,
		clock:     clk,
		startTime: clk.Now(),
	}
	if limiter == nil {
		limiter = ratelimit.NewInMemoryRateLimiter(healthChecksPerMinute, time.Minute)
	}

	return router.NewRESTController(
		"MonitoringController",
		"/health",
		func(routerService *router.RouterService, controller *router.RESTController) {
			routerService.AddGetHandler(controller, limiter, "", ctrl.healthCheck)
		},
	)
}

func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)
	status := ctrl.performHealthChecks(c.Request.Context(), logger)

	code := http.StatusOK
	if status.Database == 0 {
		code = http.StatusServiceUnavailable
	}

	return &router.ServiceResult{
		StatusCode: code,
		Data:       status,
		Message:    "viewmark health check completed",
	}
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(ctrl.clock.Now().Sub(ctrl.startTime).Seconds()),
	}

	if ctrl.checkDatabase(ctx) {
		status.Database = 1
	} else {
		logger.Error("Database health check failed")
	}

	switch {
	case ctrl.cache == nil:
		logger.Debug("Cache not configured, cache health check skipped")
	case ctrl.cache.Ping(ctx) == nil:
		status.Cache = 1
	default:
		logger.Error("Cache health check failed")
	}

	return status
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) bool {
	if ctrl.db == nil {
		return false
	}
	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
