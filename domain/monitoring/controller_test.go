package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewmark/viewmark/config/router"
	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/pkg/clock"
	"github.com/viewmark/viewmark/pkg/ratelimit"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type pingCache struct{ err error }

func (c pingCache) Ping(context.Context) error { return c.err }

type healthBody struct {
	Code int          `json:"code"`
	Data HealthStatus `json:"data"`
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	return db
}

func serve(t *testing.T, db *gorm.DB, cache Cache, clk clock.Clock, limiter ratelimit.RateLimiter) func() (*httptest.ResponseRecorder, healthBody) {
	t.Helper()

	rs := router.CreateRouterService(log.NewDiscardLogger(), nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewMonitoringController(db, log.NewDiscardLogger(), cache, clk, limiter))

	return func() (*httptest.ResponseRecorder, healthBody) {
		w := httptest.NewRecorder()
		rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		var body healthBody
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		return w, body
	}
}

func TestHealth_ReportsDependencies(t *testing.T) {
	fake := clock.NewFake(time.Unix(1_700_000_000, 0))
	check := serve(t, openDB(t), pingCache{}, fake, nil)

	fake.Advance(90 * time.Second)
	w, body := check()

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, HealthStatus{Database: 1, Cache: 1, Uptime: 90}, body.Data)
}

func TestHealth_CacheDownOrMissing(t *testing.T) {
	_, body := serve(t, openDB(t), pingCache{err: errors.New("connection refused")}, nil, nil)()
	assert.Equal(t, 1, body.Data.Database)
	assert.Equal(t, 0, body.Data.Cache)

	_, body = serve(t, openDB(t), nil, nil, nil)()
	assert.Equal(t, 0, body.Data.Cache)
}

func TestHealth_DatabaseDownIsUnavailable(t *testing.T) {
	db := openDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w, body := serve(t, db, nil, nil, nil)()

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 0, body.Data.Database)
}

func TestHealth_RateLimited(t *testing.T) {
	check := serve(t, openDB(t), nil, nil, ratelimit.NewInMemoryRateLimiter(1, time.Minute))

	first, _ := check()
	second, _ := check()

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
