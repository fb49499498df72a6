package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	refreshCalls int
	scanCalls    int
	err          error
}

func (f *fakeEnqueuer) EnqueueUtilizationRefresh(ctx context.Context) (*asynq.TaskInfo, error) {
	f.refreshCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "task-1", Queue: QueueDefault}, nil
}

func (f *fakeEnqueuer) EnqueueGLIntegrityScan(ctx context.Context) (*asynq.TaskInfo, error) {
	f.scanCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "task-2", Queue: QueueDefault}, nil
}

func newJobsRouter(enqueuer Enqueuer) http.Handler {
	r := chi.NewRouter()
	handler := NewHTTPHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), enqueuer)
	r.Route("/admin/jobs", handler.MountRoutes)
	return r
}

func TestEnqueueEndpointsAcceptTasks(t *testing.T) {
	fake := &fakeEnqueuer{}
	router := newJobsRouter(fake)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/jobs/utilization-refresh", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, 1, fake.refreshCalls)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/jobs/gl-integrity-scan", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, 1, fake.scanCalls)
}

func TestEnqueueEndpointReportsQueueFailure(t *testing.T) {
	fake := &fakeEnqueuer{err: errors.New("redis down")}
	router := newJobsRouter(fake)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/jobs/gl-integrity-scan", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "redis down")
}
