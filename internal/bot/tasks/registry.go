package tasks

import (
	"context"
)

// ScheduledTaskFunc is the signature of every scheduled task. The context
// comes from the scheduler and should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// Task names, matching the keys under scheduler.tasks in the config.
const (
	TaskSQLMaintenance = "sql_maintenance"
	TaskPruneTallies   = "prune_tallies"
)

// RegisterAllTasks returns every known task keyed by its config name.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	tasks[TaskSQLMaintenance] = newSQLMaintenanceTask(deps)
	tasks[TaskPruneTallies] = newPruneTalliesTask(deps)

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
