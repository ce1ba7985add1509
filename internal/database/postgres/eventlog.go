package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosmoforge/minecore/internal/eventlog"
)

type auditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new PostgreSQL audit trail repository
func NewAuditRepository(db *pgxpool.Pool) eventlog.Repository {
	return &auditRepository{db: db}
}

// Insert appends one audit record
func (r *auditRepository) Insert(ctx context.Context, playerID, action string, details map[string]interface{}) error {
	query := `
		INSERT INTO audit_log (player_id, action, details)
		VALUES ($1, $2, $3)
	`

	var detailsJSON []byte
	if details != nil {
		var err error
		detailsJSON, err = json.Marshal(details)
		if err != nil {
			return err
		}
	}

	_, err := r.db.Exec(ctx, query, playerID, action, detailsJSON)
	return err
}

// Query retrieves audit records matching the filter, newest first
func (r *auditRepository) Query(ctx context.Context, filter eventlog.Filter) ([]eventlog.Record, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, player_id, action, details, created_at
		FROM audit_log
		WHERE 1=1`)

	args := []interface{}{}
	argNum := 1

	if filter.PlayerID != nil {
		fmt.Fprintf(&queryBuilder, " AND player_id = $%d", argNum)
		args = append(args, *filter.PlayerID)
		argNum++
	}

	if filter.Action != nil {
		fmt.Fprintf(&queryBuilder, " AND action = $%d", argNum)
		args = append(args, *filter.Action)
		argNum++
	}

	if filter.Since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}

	if filter.Until != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at <= $%d", argNum)
		args = append(args, *filter.Until)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

// ByPlayer retrieves a player's most recent audit records
func (r *auditRepository) ByPlayer(ctx context.Context, playerID string, limit int) ([]eventlog.Record, error) {
	query := `
		SELECT id, player_id, action, details, created_at
		FROM audit_log
		WHERE player_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

// Cleanup removes audit records older than the retention period
func (r *auditRepository) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	query := `
		DELETE FROM audit_log
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`

	result, err := r.db.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

// scanRecords scans rows into Record structs
func (r *auditRepository) scanRecords(rows pgx.Rows) ([]eventlog.Record, error) {
	var records []eventlog.Record

	for rows.Next() {
		var rec eventlog.Record
		var detailsJSON []byte

		err := rows.Scan(
			&rec.ID,
			&rec.PlayerID,
			&rec.Action,
			&detailsJSON,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &rec.Details); err != nil {
				return nil, err
			}
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
