package eventlog

import (
	"context"
	"encoding/json"

	"github.com/cosmoforge/minecore/internal/logger"
)

// Service is the audit trail of confirmed mutations: collections, deposit
// lifecycle transitions and conversions, as the authority confirmed them.
type Service interface {
	// Record appends one audit entry. It never fails the caller; a write
	// error is logged and the mutation's result stands.
	Record(ctx context.Context, playerID, action string, details interface{})

	// History returns a player's most recent audit records.
	History(ctx context.Context, playerID string, limit int) ([]Record, error)

	// Query retrieves audit records matching the filter.
	Query(ctx context.Context, filter Filter) ([]Record, error)

	// CleanupOldRecords removes records past the retention period.
	CleanupOldRecords(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new audit trail service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, playerID, action string, details interface{}) {
	log := logger.FromContext(ctx)

	detailMap, err := toMap(details)
	if err != nil {
		log.Error(LogMsgRecordFailed, "action", action, "error", err)
		return
	}

	if err := s.repo.Insert(ctx, playerID, action, detailMap); err != nil {
		log.Error(LogMsgRecordFailed, "action", action, "playerID", playerID, "error", err)
		return
	}
	log.Debug(LogMsgRecorded, "action", action, "playerID", playerID)
}

func (s *service) History(ctx context.Context, playerID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	return s.repo.ByPlayer(ctx, playerID, limit)
}

func (s *service) Query(ctx context.Context, filter Filter) ([]Record, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	return s.repo.Query(ctx, filter)
}

func (s *service) CleanupOldRecords(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.Cleanup(ctx, retentionDays)
}

// toMap normalizes arbitrary detail values through JSON so the repository
// only ever sees plain maps.
func toMap(details interface{}) (map[string]interface{}, error) {
	if details == nil {
		return nil, nil
	}
	if m, ok := details.(map[string]interface{}); ok {
		return m, nil
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
