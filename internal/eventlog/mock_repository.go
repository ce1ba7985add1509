package eventlog

import (
	"context"
	"sync"
	"time"
)

// MockRepository is an in-memory Repository for tests.
type MockRepository struct {
	mu      sync.Mutex
	Records []Record
	Err     error
	nextID  int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) Insert(_ context.Context, playerID, action string, details map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	m.Records = append(m.Records, Record{
		ID:        m.nextID,
		PlayerID:  playerID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	})
	return nil
}

func (m *MockRepository) Query(_ context.Context, filter Filter) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []Record
	for i := len(m.Records) - 1; i >= 0; i-- {
		rec := m.Records[i]
		if filter.PlayerID != nil && rec.PlayerID != *filter.PlayerID {
			continue
		}
		if filter.Action != nil && rec.Action != *filter.Action {
			continue
		}
		out = append(out, rec)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *MockRepository) ByPlayer(ctx context.Context, playerID string, limit int) ([]Record, error) {
	return m.Query(ctx, Filter{PlayerID: &playerID, Limit: limit})
}

func (m *MockRepository) Cleanup(_ context.Context, _ int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	n := int64(len(m.Records))
	m.Records = nil
	return n, nil
}
