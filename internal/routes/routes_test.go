package routes

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/checkhealth/goals/internal/app"
	"github.com/checkhealth/goals/internal/config"
	"github.com/checkhealth/goals/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T, writeLimit int) http.Handler {
	t.Helper()
	a, err := app.New(&config.Config{
		AppEnv:          "test",
		DBDriver:        "sqlite",
		DBConnection:    filepath.Join(t.TempDir(), "goals.db"),
		EventTransport:  config.TransportLog,
		RateLimitWrites: writeLimit,
		RateLimitWindow: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return SetupRoutes(a)
}

func TestHealthz(t *testing.T) {
	h := setupServer(t, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestGoalRoundTripThroughRoutes(t *testing.T) {
	h := setupServer(t, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/goals",
		strings.NewReader(`{"userId":"u1","title":"Sleep 8h","category":"SLEEP","type":"single"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"1"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/goals/1/progress", strings.NewReader(`{"increment":1}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/goals/1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/goals/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h := setupServer(t, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/goals/1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWritesAreRateLimited(t *testing.T) {
	h := setupServer(t, 1)

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(`{"userId":"u1","title":"Walk"}`))
		req.RemoteAddr = "192.0.2.10:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/goals", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
