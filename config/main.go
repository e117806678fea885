package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/viewmark/viewmark/config/router"
	"github.com/viewmark/viewmark/internal/log"
	sqlmigrations "github.com/viewmark/viewmark/migrations"
	"github.com/viewmark/viewmark/pkg/constants"
	"github.com/viewmark/viewmark/pkg/migrations"
	"github.com/viewmark/viewmark/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	DB              *gorm.DB
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	Tracing         *TracingConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration

	SubmitRateLimitRequests   int
	TrackingRateLimitRequests int
	KnownSignupTTL            time.Duration
}

func NewAppConfig() *AppConfig {
	config := &AppConfig{
		RateLimitRequests:         constants.DefaultRateLimitRequests,
		RateLimitWindow:           constants.DefaultRateLimitWindow(),
		RequestTimeout:            30 * time.Second,
		SubmitRateLimitRequests:   constants.SubmitEmailRateLimitRequests,
		TrackingRateLimitRequests: constants.TrackingRateLimitRequests,
		KnownSignupTTL:            constants.KnownSignupTTL,
	}

	if reqStr := os.Getenv("RATE_LIMIT_REQUESTS"); reqStr != "" {
		if parsed, err := strconv.Atoi(reqStr); err == nil && parsed > 0 {
			config.RateLimitRequests = parsed
		}
	}

	if winStr := os.Getenv("RATE_LIMIT_WINDOW"); winStr != "" {
		if parsed, err := time.ParseDuration(winStr); err == nil && parsed > 0 {
			config.RateLimitWindow = parsed
		}
	}

	if timeoutStr := os.Getenv("REQUEST_TIMEOUT"); timeoutStr != "" {
		if parsed, err := time.ParseDuration(timeoutStr); err == nil && parsed > 0 {
			config.RequestTimeout = parsed
		}
	}

	config.SubmitRateLimitRequests = utils.GetEnvIntOrDefault("SUBMIT_EMAIL_RATE_LIMIT", config.SubmitRateLimitRequests)
	config.TrackingRateLimitRequests = utils.GetEnvIntOrDefault("TRACKING_RATE_LIMIT", config.TrackingRateLimitRequests)
	config.KnownSignupTTL = utils.GetEnvDurationOrDefault("KNOWN_SIGNUP_TTL", config.KnownSignupTTL)

	return config
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

// RunMigrations applies the embedded SQL migrations to db.
func RunMigrations(ctx context.Context, logger *log.Logger, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return migrations.Up(ctx, sqlDB, migrations.Config{
		FS:     sqlmigrations.FS,
		Logger: logger,
	})
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	LoadEnvFile(logger, "")

	if autoMigrate {
		if err := checkAutoMigrate(logger); err != nil {
			return nil, err
		}
	}

	tracingConfig := NewTracingConfig()
	tracingShutdown, err := SetupTracing(logger, tracingConfig)
	if err != nil {
		return nil, err
	}

	db, err := NewDatabaseWithRetry(context.Background(), logger, nil, nil)
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		err := RunMigrations(ctx, logger, db)
		cancel()
		if err != nil {
			return nil, err
		}
	}

	appConfig := NewAppConfig()
	cache := NewCacheConfig().NewCacheOrNil(logger)

	routerService := router.CreateRouterService(logger, cache, &router.RouterConfig{
		RateLimitRequests: appConfig.RateLimitRequests,
		RateLimitWindow:   appConfig.RateLimitWindow,
		RequestTimeout:    appConfig.RequestTimeout,
		TracingService:    tracingConfig.MiddlewareServiceName(),
	})

	logger.Info("Application configuration loaded successfully")

	return &ApplicationConfig{
		DB:              db,
		RouterService:   routerService,
		Logger:          logger,
		Cache:           cache,
		Config:          appConfig,
		Tracing:         tracingConfig,
		TracingShutdown: tracingShutdown,
	}, nil
}
