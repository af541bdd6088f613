package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagedrop/service/internal/health"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func TestCheck_Healthy(t *testing.T) {
	h := health.NewHandler(stubPinger{}, "production")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Check(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "production", body["environment"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotContains(t, body, "error")
}

func TestCheck_StoreUnreachable(t *testing.T) {
	h := health.NewHandler(stubPinger{err: errors.New("dial tcp: refused")}, "development")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Check(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "metadata store unreachable", body["error"])
}
