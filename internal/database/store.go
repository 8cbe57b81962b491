package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

const maxTopActionsLimit = 100

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// RecordAction increments the tally for the tally's chat, actor, target
	// and action, creating it on first use. Display names are refreshed.
	RecordAction(ctx context.Context, tally *ActionTally) error

	// GetTopActions returns the most frequent tallies in a chat.
	GetTopActions(ctx context.Context, chatID int64, limit int) ([]*ActionTally, error)

	// DeleteChatTallies removes every tally recorded for a chat.
	DeleteChatTallies(ctx context.Context, chatID int64) error

	// PruneTallies deletes tallies last updated before the given time and
	// reports how many were removed.
	PruneTallies(ctx context.Context, before time.Time) (int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) RecordAction(ctx context.Context, tally *ActionTally) error {
	if tally == nil {
		return errors.New("cannot record nil tally")
	}
	if tally.ChatID == 0 {
		return errors.New("tally must have a non-zero chat_id")
	}
	if tally.ActorID == "" || tally.TargetID == "" {
		return errors.New("tally must have actor_id and target_id")
	}
	if tally.Action == "" {
		return errors.New("tally must have a non-empty action")
	}

	now := time.Now().UTC()
	tally.CreatedAt = now
	tally.UpdatedAt = now

	query := `
        INSERT INTO action_tallies (chat_id, actor_id, actor_name, target_id, target_name, action, count, created_at, updated_at)
        VALUES (:chat_id, :actor_id, :actor_name, :target_id, :target_name, :action, 1, :created_at, :updated_at)
        ON CONFLICT (chat_id, actor_id, target_id, action) DO UPDATE SET
            count = action_tallies.count + 1,
            actor_name = excluded.actor_name,
            target_name = excluded.target_name,
            updated_at = excluded.updated_at;
    `

	if _, err := s.db.NamedExecContext(ctx, query, tally); err != nil {
		s.logger.ErrorContext(ctx, "Error recording action", "chat_id", tally.ChatID, "action", tally.Action, "error", err)
		return fmt.Errorf("failed to record action (chat %d): %w", tally.ChatID, err)
	}

	s.logger.DebugContext(ctx, "Action recorded",
		"chat_id", tally.ChatID, "actor_id", tally.ActorID, "target_id", tally.TargetID, "action", tally.Action)
	return nil
}

func (s *sqlxStore) GetTopActions(ctx context.Context, chatID int64, limit int) ([]*ActionTally, error) {
	if chatID == 0 {
		return nil, errors.New("chat_id cannot be zero")
	}
	if limit <= 0 {
		limit = 10
	} else if limit > maxTopActionsLimit {
		limit = maxTopActionsLimit
	}

	var tallies []*ActionTally
	query := `
        SELECT id, chat_id, actor_id, actor_name, target_id, target_name, action, count, created_at, updated_at
        FROM action_tallies
        WHERE chat_id = ?
        ORDER BY count DESC, updated_at DESC, id ASC
        LIMIT ?;
    `
	if err := s.db.SelectContext(ctx, &tallies, query, chatID, limit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*ActionTally{}, nil
		}
		s.logger.ErrorContext(ctx, "Error fetching top actions", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get top actions for chat %d: %w", chatID, err)
	}
	if tallies == nil {
		tallies = []*ActionTally{}
	}
	return tallies, nil
}

func (s *sqlxStore) DeleteChatTallies(ctx context.Context, chatID int64) error {
	if chatID == 0 {
		return errors.New("chat_id cannot be zero")
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM action_tallies WHERE chat_id = ?;", chatID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting chat tallies", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to delete tallies for chat %d: %w", chatID, err)
	}

	affected, _ := result.RowsAffected()
	s.logger.InfoContext(ctx, "Deleted chat tallies", "chat_id", chatID, "rows_affected", affected)
	return nil
}

func (s *sqlxStore) PruneTallies(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM action_tallies WHERE updated_at < ?;", before.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error pruning tallies", "before", before, "error", err)
		return 0, fmt.Errorf("failed to prune tallies: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read pruned row count: %w", err)
	}
	return affected, nil
}

// RunSQLMaintenance executes VACUUM, which SQLite requires to run outside a
// transaction.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	_, err := s.db.ExecContext(ctx, "VACUUM;")
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)
	case err != nil:
		s.logger.ErrorContext(ctx, "Failed to execute VACUUM", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) failed: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully.")
	return nil
}
