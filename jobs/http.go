package jobs

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

// Enqueuer submits maintenance tasks to the queue.
type Enqueuer interface {
	EnqueueUtilizationRefresh(ctx context.Context) (*asynq.TaskInfo, error)
	EnqueueGLIntegrityScan(ctx context.Context) (*asynq.TaskInfo, error)
}

var _ Enqueuer = (*Client)(nil)

// HTTPHandler lets operators kick off maintenance tasks without waiting
// for the nightly schedule.
type HTTPHandler struct {
	logger   *slog.Logger
	enqueuer Enqueuer
}

// NewHTTPHandler constructs the handler.
func NewHTTPHandler(logger *slog.Logger, enqueuer Enqueuer) *HTTPHandler {
	return &HTTPHandler{logger: logger, enqueuer: enqueuer}
}

// MountRoutes attaches task submission routes. Mounted under /admin/jobs.
func (h *HTTPHandler) MountRoutes(r chi.Router) {
	r.Post("/utilization-refresh", h.UtilizationRefresh)
	r.Post("/gl-integrity-scan", h.GLIntegrityScan)
}

func (h *HTTPHandler) UtilizationRefresh(w http.ResponseWriter, r *http.Request) {
	info, err := h.enqueuer.EnqueueUtilizationRefresh(r.Context())
	if err != nil {
		h.logger.Error("enqueue utilization refresh", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"taskId": info.ID, "queue": info.Queue})
}

func (h *HTTPHandler) GLIntegrityScan(w http.ResponseWriter, r *http.Request) {
	info, err := h.enqueuer.EnqueueGLIntegrityScan(r.Context())
	if err != nil {
		h.logger.Error("enqueue gl integrity scan", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"taskId": info.ID, "queue": info.Queue})
}
