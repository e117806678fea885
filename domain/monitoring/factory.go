package monitoring

import (
	"github.com/viewmark/viewmark/config/router"
	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/pkg/clock"
	"github.com/viewmark/viewmark/pkg/ratelimit"
	"gorm.io/gorm"
)

type MonitoringControllerFactory interface {
	CreateController(limiter ratelimit.RateLimiter) *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	db     *gorm.DB
	logger *log.Logger
	cache  Cache
}

func NewMonitoringControllerFactory(db *gorm.DB, logger *log.Logger, cache Cache) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		db:     db,
		logger: logger,
		cache:  cache,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController(limiter ratelimit.RateLimiter) *router.RESTController {
	return NewMonitoringController(f.db, f.logger, f.cache, clock.Real(), limiter)
}
