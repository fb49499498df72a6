// Package jobs holds the background task definitions and the Asynq
// worker plumbing.
package jobs

import "github.com/hibiken/asynq"

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskWarehouseUtilizationRefresh recomputes utilization for all
	// active warehouses.
	TaskWarehouseUtilizationRefresh = "warehouse:utilization_refresh"
	// TaskGLIntegrityScan verifies ledger balance invariants per company.
	TaskGLIntegrityScan = "gl:integrity_scan"
)

// NewUtilizationRefreshTask constructs the warehouse refresh task. The
// task carries no payload; the handler walks every active warehouse.
func NewUtilizationRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskWarehouseUtilizationRefresh, nil)
}

// NewGLIntegrityScanTask constructs the ledger integrity task.
func NewGLIntegrityScanTask() *asynq.Task {
	return asynq.NewTask(TaskGLIntegrityScan, nil)
}
