// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	err error
}

func (f *fakeChecker) Ping(context.Context) error {
	return f.err
}

func newHealthRouter(db, redis Checker) (chi.Router, *Handler) {
	handler := NewHandler(db, redis)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, handler
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReadinessAllHealthy(t *testing.T) {
	router, _ := newHealthRouter(&fakeChecker{}, &fakeChecker{})

	rec := get(router, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Checks, 2)
	for _, check := range resp.Checks {
		assert.True(t, check.Healthy, check.Name)
	}
}

func TestReadinessDegradedOnRedisFailure(t *testing.T) {
	router, _ := newHealthRouter(
		&fakeChecker{},
		&fakeChecker{err: errors.New("connection refused")},
	)

	rec := get(router, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
}

func TestReadinessDuringShutdown(t *testing.T) {
	router, handler := newHealthRouter(&fakeChecker{}, &fakeChecker{})
	handler.SetShutdown(true)

	rec := get(router, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "shutting_down", resp.Status)
}

func TestLivenessIgnoresDependencyFailures(t *testing.T) {
	router, _ := newHealthRouter(
		&fakeChecker{err: errors.New("db down")},
		&fakeChecker{err: errors.New("redis down")},
	)

	rec := get(router, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadinessNotReady(t *testing.T) {
	router, handler := newHealthRouter(&fakeChecker{}, &fakeChecker{})
	handler.SetReady(false)

	rec := get(router, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
}
