package waitlist

import (
	"github.com/viewmark/viewmark/config/router"
	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/pkg/ratelimit"
	"gorm.io/gorm"
)

type WaitlistServiceFactory interface {
	CreateService() WaitlistService
	CreateController(limiter ratelimit.RateLimiter) *router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	db      *gorm.DB
	logger  *log.Logger
	options []ServiceOption
	service WaitlistService
}

func NewWaitlistServiceFactory(db *gorm.DB, logger *log.Logger, options ...ServiceOption) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		db:      db,
		logger:  logger,
		options: options,
	}
}

// CreateService returns the same service on every call so the API and the
// site share one cache and one set of counters.
func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	if f.service == nil {
		repository := NewWaitlistRepository(f.db)
		f.service = NewWaitlistService(f.logger, repository, f.options...)
	}
	return f.service
}

func (f *DefaultWaitlistServiceFactory) CreateController(limiter ratelimit.RateLimiter) *router.RESTController {
	return NewWaitlistController(f.CreateService(), limiter)
}
