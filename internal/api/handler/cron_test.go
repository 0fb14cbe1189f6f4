package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
)

type fakeCleanup struct {
	triggered int
}

func (f *fakeCleanup) TriggerManualCleanup() { f.triggered++ }

func (f *fakeCleanup) GetStatus() map[string]any {
	return map[string]any{"cleanup_enabled": true, "total_evicted": 4}
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedRuns   int
	}{
		{"limpeza de sessões", "/v1/cron/session-cleanup/run", http.StatusAccepted, 1},
		{"todas", "/v1/cron/all/run", http.StatusAccepted, 1},
		{"tipo inválido", "/v1/cron/meta/run", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := &fakeCleanup{}
			rt := router.New(router.WithRoutes(CronJobs(CronJobServices{SessionCleanupService: cleanup})...))

			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedRuns, cleanup.triggered)
		})
	}
}

func TestRunCronJob_ServiceUnavailable(t *testing.T) {
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{})...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/session-cleanup/run", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, apiErrors.ErrInternalServer, apiErr.Code)
}

func TestGetCronStatus(t *testing.T) {
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{SessionCleanupService: &fakeCleanup{}})...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, true, status["session-cleanup"]["cleanup_enabled"])
	assert.Equal(t, float64(4), status["session-cleanup"]["total_evicted"])
}

func TestHealthcheck(t *testing.T) {
	rt := router.New(router.WithRoutes(Healthcheck()...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}
