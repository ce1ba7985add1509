package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmoforge/minecore/internal/domain"
)

func TestRecordNormalizesStructDetails(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)

	svc.Record(context.Background(), "p1", "converted", domain.Conversion{
		From: domain.CurrencyCCC, To: domain.CurrencyCS, Amount: 1000, Result: 5,
	})

	require.Len(t, repo.Records, 1)
	rec := repo.Records[0]
	assert.Equal(t, "p1", rec.PlayerID)
	assert.Equal(t, "converted", rec.Action)
	assert.Equal(t, 1000.0, rec.Details["amount"])
	assert.Equal(t, "CCC", rec.Details["from"])
}

func TestRecordSwallowsRepositoryError(t *testing.T) {
	repo := NewMockRepository()
	repo.Err = errors.New("db down")
	svc := NewService(repo)

	// Must not panic or propagate; the confirmed mutation already happened
	svc.Record(context.Background(), "p1", "converted", nil)
	assert.Empty(t, repo.Records)
}

func TestHistoryDefaultsLimit(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)

	for i := 0; i < 3; i++ {
		svc.Record(context.Background(), "p1", "deposit_created", map[string]interface{}{"i": i})
	}
	svc.Record(context.Background(), "p2", "deposit_created", nil)

	records, err := svc.History(context.Background(), "p1", 0)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	for _, rec := range records {
		assert.Equal(t, "p1", rec.PlayerID)
	}
}

func TestQueryByAction(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)

	svc.Record(context.Background(), "p1", "deposit_created", nil)
	svc.Record(context.Background(), "p1", "converted", nil)

	action := "converted"
	records, err := svc.Query(context.Background(), Filter{Action: &action})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "converted", records[0].Action)
}
