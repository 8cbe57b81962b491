package database

import "time"

// ActionTally counts how often an actor performed an action on a target in a
// chat. Only the aggregate is kept; message content is never stored.
type ActionTally struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	ChatID     int64  `db:"chat_id"`
	ActorID    string `db:"actor_id"`
	ActorName  string `db:"actor_name"`
	TargetID   string `db:"target_id"`
	TargetName string `db:"target_name"`
	Action     string `db:"action"`
	Count      int64  `db:"count"`
}
