package waitlist

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewmark/viewmark/config/router"
	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/internal/models"
	"github.com/viewmark/viewmark/pkg/ratelimit"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T, db *gorm.DB, limiter ratelimit.RateLimiter) *router.RouterService {
	t.Helper()

	logger := log.NewDiscardLogger()
	rs := router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})

	service := NewWaitlistServiceFactory(db, logger, WithMetrics(NewMetrics(rs.Registerer()))).CreateService()
	rs.MountController(NewWaitlistController(service, limiter))
	return rs
}

func postRaw(rs *router.RouterService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/submit-email", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
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

func TestSubmitEmail_Contract(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		status  int
		want    map[string]any
		wantRow bool
	}{
		{
			name:    "accepted",
			body:    `{"email":"ada@example.com"}`,
			status:  http.StatusOK,
			want:    map[string]any{"success": true, "message": "Email submitted successfully"},
			wantRow: true,
		},
		{
			name:   "missing email",
			body:   `{}`,
			status: http.StatusBadRequest,
			want:   map[string]any{"error": "Email is required"},
		},
		{
			name:   "empty email",
			body:   `{"email":""}`,
			status: http.StatusBadRequest,
			want:   map[string]any{"error": "Email is required"},
		},
		{
			name:   "null email",
			body:   `{"email":null}`,
			status: http.StatusBadRequest,
			want:   map[string]any{"error": "Email is required"},
		},
		{
			name:   "bad shape",
			body:   `{"email":"ada-at-example"}`,
			status: http.StatusBadRequest,
			want:   map[string]any{"error": "Invalid email format"},
		},
		{
			name:   "whitespace only",
			body:   `{"email":"   "}`,
			status: http.StatusBadRequest,
			want:   map[string]any{"error": "Invalid email format"},
		},
		{
			name:   "wrong type",
			body:   `{"email":42}`,
			status: http.StatusBadRequest,
			want:   map[string]any{"error": "Invalid email format"},
		},
		{
			name:   "false email",
			body:   `{"email":false}`,
			status: http.StatusBadRequest,
			want:   map[string]any{"error": "Email is required"},
		},
		{
			name:   "zero email",
			body:   `{"email":0}`,
			status: http.StatusBadRequest,
			want:   map[string]any{"error": "Email is required"},
		},
		{
			name:   "array body",
			body:   `[]`,
			status: http.StatusBadRequest,
			want:   map[string]any{"error": "Email is required"},
		},
		{
			name:   "true email",
			body:   `{"email":true}`,
			status: http.StatusBadRequest,
			want:   map[string]any{"error": "Invalid email format"},
		},
		{
			name:   "malformed json",
			body:   `{"email":`,
			status: http.StatusInternalServerError,
			want:   map[string]any{"error": "Internal server error"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			rs := newTestRouter(t, db, nil)

			w := postRaw(rs, tc.body)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.want, decodeBody(t, w))

			var count int64
			require.NoError(t, db.Model(&models.WaitlistEmail{}).Count(&count).Error)
			if tc.wantRow {
				assert.Equal(t, int64(1), count)
			} else {
				assert.Zero(t, count)
			}
		})
	}
}

func TestSubmitEmail_DuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	rs := newTestRouter(t, db, nil)

	first := postRaw(rs, `{"email":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postRaw(rs, `{"email":" ADA@example.com "}`)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, map[string]any{"error": "This email is already on the waitlist!"}, decodeBody(t, second))

	var count int64
	require.NoError(t, db.Model(&models.WaitlistEmail{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitEmail_SaveFailure(t *testing.T) {
	db := newTestDB(t)
	rs := newTestRouter(t, db, nil)

	require.NoError(t, db.Migrator().DropTable(&models.WaitlistEmail{}))

	w := postRaw(rs, `{"email":"ada@example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"error": "Failed to save email"}, decodeBody(t, w))
}

func TestSubmitEmail_ConcurrentDuplicatesStoreOneRow(t *testing.T) {
	db := newTestDB(t)
	rs := newTestRouter(t, db, nil)

	const workers = 8
	statuses := make([]int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i] = postRaw(rs, `{"email":"race@example.com"}`).Code
		}(i)
	}
	wg.Wait()

	ok, conflicts := 0, 0
	for _, s := range statuses {
		switch s {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)

	var count int64
	require.NoError(t, db.Model(&models.WaitlistEmail{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitEmail_MethodNotAllowed(t *testing.T) {
	rs := newTestRouter(t, newTestDB(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/submit-email", nil)
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, map[string]any{"error": "Method not allowed"}, decodeBody(t, w))
}

func TestSubmitEmail_RateLimited(t *testing.T) {
	limiter := ratelimit.NewInMemoryRateLimiter(1, time.Minute)
	rs := newTestRouter(t, newTestDB(t), limiter)

	assert.Equal(t, http.StatusOK, postRaw(rs, `{"email":"one@example.com"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, postRaw(rs, `{"email":"two@example.com"}`).Code)
}
