package analytics

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewmark/viewmark/config/router"
	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/internal/models"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T, db *gorm.DB) *router.RouterService {
	t.Helper()

	logger := log.NewDiscardLogger()
	rs := router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewAnalyticsServiceFactory(db, logger).CreateController(nil))
	return rs
}

func post(rs *router.RouterService, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestTrackPageView_StoresRow(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		wantIP  string
	}{
		{"forwarded first entry", map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1"}, "203.0.113.7"},
		{"client-ip fallback", map[string]string{"Client-Ip": "198.51.100.4"}, "198.51.100.4"},
		{"unknown", nil, "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			rs := newTestRouter(t, db)

			w := post(rs, "/api/track-pageview",
				`{"pagePath":"/terms","userAgent":"ua","referrer":"https://ref.example","sessionId":"s-1"}`,
				tc.headers)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, map[string]any{"success": true}, decodeBody(t, w))

			var views []models.PageView
			require.NoError(t, db.Find(&views).Error)
			require.Len(t, views, 1)
			assert.Equal(t, "/terms", views[0].PagePath)
			assert.Equal(t, "ua", views[0].UserAgent)
			assert.Equal(t, "https://ref.example", views[0].Referrer)
			assert.Equal(t, "s-1", views[0].SessionID)
			assert.Equal(t, tc.wantIP, views[0].IPAddress)
		})
	}
}

func TestTrackPageView_Failures(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		rs := newTestRouter(t, newTestDB(t))

		w := post(rs, "/api/track-pageview", `{"pagePath":`, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, map[string]any{"error": "Internal server error"}, decodeBody(t, w))
	})

	t.Run("store failure", func(t *testing.T) {
		db := newTestDB(t)
		rs := newTestRouter(t, db)
		require.NoError(t, db.Migrator().DropTable(&models.PageView{}))

		w := post(rs, "/api/track-pageview", `{"pagePath":"/"}`, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, map[string]any{"error": "Failed to track page view"}, decodeBody(t, w))
	})
}

func TestTrackInteraction(t *testing.T) {
	t.Run("type required", func(t *testing.T) {
		rs := newTestRouter(t, newTestDB(t))

		w := post(rs, "/api/track-interaction", `{"pagePath":"/"}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, map[string]any{"error": "interactionType is required"}, decodeBody(t, w))
	})

	t.Run("page view lands in both tables", func(t *testing.T) {
		db := newTestDB(t)
		rs := newTestRouter(t, db)

		w := post(rs, "/api/track-interaction",
			`{"interactionType":"page_view","pagePath":"/","sessionId":"s-2"}`,
			map[string]string{"X-Forwarded-For": "203.0.113.9"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"success": true}, decodeBody(t, w))

		var interaction models.UserInteraction
		require.NoError(t, db.First(&interaction).Error)
		assert.Equal(t, "page_view", interaction.InteractionType)
		assert.Equal(t, "203.0.113.9", interaction.IPAddress)
		assert.Nil(t, interaction.Email)

		var views int64
		require.NoError(t, db.Model(&models.PageView{}).Count(&views).Error)
		assert.Equal(t, int64(1), views)
	})

	t.Run("signup mirror tolerates duplicates", func(t *testing.T) {
		db := newTestDB(t)
		rs := newTestRouter(t, db)
		require.NoError(t, db.Create(&models.WaitlistEmail{Email: "ada@example.com"}).Error)

		w := post(rs, "/api/track-interaction",
			`{"interactionType":"email_signup","email":"ada@example.com"}`, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var interactions int64
		require.NoError(t, db.Model(&models.UserInteraction{}).Count(&interactions).Error)
		assert.Equal(t, int64(1), interactions)

		var emails int64
		require.NoError(t, db.Model(&models.WaitlistEmail{}).Count(&emails).Error)
		assert.Equal(t, int64(1), emails)
	})

	t.Run("store failure", func(t *testing.T) {
		db := newTestDB(t)
		rs := newTestRouter(t, db)
		require.NoError(t, db.Migrator().DropTable(&models.UserInteraction{}))

		w := post(rs, "/api/track-interaction", `{"interactionType":"page_view"}`, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, map[string]any{"error": "Failed to track interaction"}, decodeBody(t, w))
	})
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"single forwarded", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"forwarded list", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"empty first entry falls back", map[string]string{"X-Forwarded-For": " ,10.0.0.1", "Client-Ip": "198.51.100.4"}, "198.51.100.4"},
		{"client-ip", map[string]string{"Client-Ip": "198.51.100.4"}, "198.51.100.4"},
		{"none", nil, "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = req

			assert.Equal(t, tc.want, ClientIP(ctx))
		})
	}
}
