package tasks

import (
	"context"
	"fmt"
	"time"
)

// newPruneTalliesTask creates the task that drops tallies idle for longer
// than stats.retention.
func newPruneTalliesTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", TaskPruneTallies)

	return func(ctx context.Context) error {
		cutoff := time.Now().UTC().Add(-deps.Config.Stats.Retention)

		removed, err := deps.Store.PruneTallies(ctx, cutoff)
		if err != nil {
			log.ErrorContext(ctx, "Prune tallies task failed", "error", err, "cutoff", cutoff)
			return fmt.Errorf("prune tallies failed: %w", err)
		}

		log.InfoContext(ctx, "Pruned stale action tallies", "removed", removed, "cutoff", cutoff)
		return nil
	}
}
