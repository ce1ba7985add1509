package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmoforge/minecore/internal/eventlog"
)

type fakeAuditService struct {
	records    []eventlog.Record
	err        error
	lastLimit  int
	lastFilter *eventlog.Filter
}

func (f *fakeAuditService) Record(_ context.Context, _, _ string, _ interface{}) {}

func (f *fakeAuditService) History(_ context.Context, _ string, limit int) ([]eventlog.Record, error) {
	f.lastLimit = limit
	return f.records, f.err
}

func (f *fakeAuditService) Query(_ context.Context, filter eventlog.Filter) ([]eventlog.Record, error) {
	f.lastFilter = &filter
	return f.records, f.err
}

func (f *fakeAuditService) CleanupOldRecords(_ context.Context, _ int) (int64, error) {
	return 0, f.err
}

func TestHandleGetAuditHistory(t *testing.T) {
	svc := &fakeAuditService{records: []eventlog.Record{{
		ID:        7,
		PlayerID:  "p1",
		Action:    "collected",
		Details:   map[string]interface{}{"zone": 1.0, "amount": 42.0},
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}}}

	rec := getRequest(HandleGetAuditHistory(svc), "/?player_id=p1&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.lastLimit)

	var records []eventlog.Record
	decodeData(t, rec, &records)
	require.Len(t, records, 1)
	assert.Equal(t, "collected", records[0].Action)
}

func TestHandleGetAuditHistoryActionFilter(t *testing.T) {
	svc := &fakeAuditService{records: []eventlog.Record{{
		ID:       9,
		PlayerID: "p1",
		Action:   "converted",
	}}}

	rec := getRequest(HandleGetAuditHistory(svc), "/?player_id=p1&action=converted&limit=3")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.lastFilter)
	require.NotNil(t, svc.lastFilter.Action)
	assert.Equal(t, "converted", *svc.lastFilter.Action)
	assert.Equal(t, 3, svc.lastFilter.Limit)
}

func TestHandleGetAuditHistoryMissingParam(t *testing.T) {
	rec := getRequest(HandleGetAuditHistory(&fakeAuditService{}), "/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
