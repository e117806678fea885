package analytics

import (
	"github.com/viewmark/viewmark/config/router"
	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/pkg/ratelimit"
	"gorm.io/gorm"
)

type AnalyticsServiceFactory interface {
	CreateService() AnalyticsService
	CreateController(limiter ratelimit.RateLimiter) *router.RESTController
}

type DefaultAnalyticsServiceFactory struct {
	db      *gorm.DB
	logger  *log.Logger
	options []ServiceOption
}

func NewAnalyticsServiceFactory(db *gorm.DB, logger *log.Logger, options ...ServiceOption) AnalyticsServiceFactory {
	return &DefaultAnalyticsServiceFactory{
		db:      db,
		logger:  logger,
		options: options,
	}
}

func (f *DefaultAnalyticsServiceFactory) CreateService() AnalyticsService {
	return NewAnalyticsService(f.logger, NewAnalyticsRepository(f.db), f.options...)
}

func (f *DefaultAnalyticsServiceFactory) CreateController(limiter ratelimit.RateLimiter) *router.RESTController {
	return NewAnalyticsController(f.CreateService(), limiter)
}
