package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// UtilizationRefresher recomputes warehouse utilization across tenants.
type UtilizationRefresher interface {
	RefreshAll(ctx context.Context) (int, error)
}

// HandleUtilizationRefresh returns the handler for the nightly warehouse
// utilization refresh.
func HandleUtilizationRefresh(logger *slog.Logger, refresher UtilizationRefresher) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		refreshed, err := refresher.RefreshAll(ctx)
		if err != nil {
			logger.Error("utilization refresh failed",
				slog.Int("refreshed", refreshed), slog.Any("error", err))
			return err
		}
		logger.Info("utilization refresh done", slog.Int("refreshed", refreshed))
		return nil
	}
}
