// Package tasks implements scheduled maintenance tasks for slactionbot.
package tasks

import (
	"log/slog"

	"github.com/edgard/slactionbot/internal/config"
	"github.com/edgard/slactionbot/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
