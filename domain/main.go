package domain

import (
	"fmt"

	"github.com/viewmark/viewmark/config"
	"github.com/viewmark/viewmark/domain/analytics"
	"github.com/viewmark/viewmark/domain/monitoring"
	"github.com/viewmark/viewmark/domain/site"
	"github.com/viewmark/viewmark/domain/waitlist"
	"github.com/viewmark/viewmark/pkg/factory"
)

// SetupCoreDomain mounts every domain controller on the application router.
// The JSON submit endpoint and the no-JS /join form share one waitlist
// service and one submission limiter.
func SetupCoreDomain(appConfig *config.ApplicationConfig) error {
	rs := appConfig.RouterService
	settings := appConfig.Config
	container := factory.NewFactoryContainer(appConfig.Cache, appConfig.Logger)
	limiters := container.RateLimiterFactory

	submitLimiter := limiters.CreateRateLimiter("submit-email", settings.SubmitRateLimitRequests, settings.RateLimitWindow)
	trackingLimiter := limiters.CreateRateLimiter("tracking", settings.TrackingRateLimitRequests, settings.RateLimitWindow)
	healthLimiter := limiters.CreateRateLimiter("health", 10, settings.RateLimitWindow)

	waitlistOptions := []waitlist.ServiceOption{waitlist.WithMetrics(waitlist.NewMetrics(rs.Registerer()))}
	if appConfig.Cache != nil {
		waitlistOptions = append(waitlistOptions, waitlist.WithKnownSignupCache(appConfig.Cache, settings.KnownSignupTTL))
	}
	waitlistFactory := waitlist.NewWaitlistServiceFactory(appConfig.DB, appConfig.Logger, waitlistOptions...)

	analyticsFactory := analytics.NewAnalyticsServiceFactory(
		appConfig.DB,
		appConfig.Logger,
		analytics.WithMetrics(analytics.NewMetrics(rs.Registerer())),
	)

	siteController, err := site.NewSiteFactory(waitlistFactory.CreateService(), nil).CreateController(submitLimiter)
	if err != nil {
		return fmt.Errorf("failed to build site controller: %w", err)
	}

	rs.MountController(monitoring.NewMonitoringControllerFactory(appConfig.DB, appConfig.Logger, appConfig.Cache).CreateController(healthLimiter))
	rs.MountController(waitlistFactory.CreateController(submitLimiter))
	rs.MountController(analyticsFactory.CreateController(trackingLimiter))
	rs.MountController(siteController)

	appConfig.Logger.Info("Domains mounted", "domains", []string{"monitoring", "waitlist", "analytics", "site"})
	return nil
}
