package site

import (
	"github.com/viewmark/viewmark/config/router"
	"github.com/viewmark/viewmark/domain/site/dashboard"
	"github.com/viewmark/viewmark/domain/waitlist"
	"github.com/viewmark/viewmark/pkg/clock"
	"github.com/viewmark/viewmark/pkg/ratelimit"
)

type SiteFactory interface {
	CreateController(joinLimiter ratelimit.RateLimiter) (*router.RESTController, error)
}

type DefaultSiteFactory struct {
	waitlist waitlist.WaitlistService
	provider dashboard.DashboardProvider
	clock    clock.Clock
}

// NewSiteFactory uses the embedded fixtures when provider is nil.
func NewSiteFactory(service waitlist.WaitlistService, provider dashboard.DashboardProvider) SiteFactory {
	return &DefaultSiteFactory{waitlist: service, provider: provider, clock: clock.Real()}
}

func (f *DefaultSiteFactory) CreateController(joinLimiter ratelimit.RateLimiter) (*router.RESTController, error) {
	provider := f.provider
	if provider == nil {
		fixtures, err := dashboard.NewFixtureProvider()
		if err != nil {
			return nil, err
		}
		provider = fixtures
	}
	return NewSiteController(f.waitlist, provider, f.clock, joinLimiter), nil
}
