package eventlog

import (
	"context"
	"time"
)

// Record is one confirmed mutation as persisted in the audit trail.
type Record struct {
	ID        int64                  `json:"id"`
	PlayerID  string                 `json:"player_id"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Filter narrows audit queries.
type Filter struct {
	PlayerID *string
	Action   *string
	Since    *time.Time
	Until    *time.Time
	Limit    int
}

// Repository defines the storage interface for the audit trail.
type Repository interface {
	// Insert appends one record; details must already be JSON-encodable.
	Insert(ctx context.Context, playerID, action string, details map[string]interface{}) error

	// Query retrieves records matching the filter, newest first.
	Query(ctx context.Context, filter Filter) ([]Record, error)

	// ByPlayer retrieves a player's most recent records.
	ByPlayer(ctx context.Context, playerID string, limit int) ([]Record, error)

	// Cleanup removes records older than the retention period.
	Cleanup(ctx context.Context, retentionDays int) (int64, error)
}
