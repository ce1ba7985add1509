package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cosmoforge/minecore/internal/accrual"
	"github.com/cosmoforge/minecore/internal/clock"
	"github.com/cosmoforge/minecore/internal/domain"
	"github.com/cosmoforge/minecore/internal/reconcile"
)

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeRemote stands in for the remote authority behind the reconciliation
// client.
type fakeRemote struct {
	mu          sync.Mutex
	snap        *domain.PlayerSnapshot
	snapErr     error
	collectSnap *domain.PlayerSnapshot
	collectErr  error
}

func (f *fakeRemote) GetPlayerSnapshot(_ context.Context, _ string) (*domain.PlayerSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snapErr != nil {
		return nil, f.snapErr
	}
	return f.snap.Clone(), nil
}

func (f *fakeRemote) Collect(_ context.Context, _ string, _ int, _ time.Time) (*domain.PlayerSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.collectErr != nil {
		return nil, f.collectErr
	}
	return f.collectSnap.Clone(), nil
}

type noopHub struct{}

func (noopHub) Broadcast(_, _ string, _ interface{}) {}

type noopDeposits struct{}

func (noopDeposits) SyncDeposits(_ string, _ []domain.Deposit) {}
func (noopDeposits) DropPlayer(_ string)                       {}

// testEnv wires a real reconciliation client and simulator around a fake
// remote, the way the server wires them.
type testEnv struct {
	remote *fakeRemote
	client *reconcile.Client
	sim    *accrual.Simulator
	clk    *clock.SimulatedClock
}

func newTestEnv(remote *fakeRemote) *testEnv {
	clk := clock.NewSimulatedClock(testStart)
	client := reconcile.NewClient(remote)
	sim := accrual.NewSimulator(clk, client, noopHub{}, time.Second)
	client.Bind(sim, noopDeposits{})
	return &testEnv{remote: remote, client: client, sim: sim, clk: clk}
}

func (e *testEnv) track(t *testing.T, playerID string) {
	t.Helper()
	_, err := e.client.Track(context.Background(), playerID)
	require.NoError(t, err)
}

// playerSnap builds a snapshot with one zone accruing 0.5/s whose last
// collection was 100 seconds before the test clock's start.
func playerSnap(playerID string) *domain.PlayerSnapshot {
	return &domain.PlayerSnapshot{
		PlayerID: playerID,
		Balances: map[domain.Currency]float64{domain.CurrencyCS: 100},
		Zones: map[int]domain.ZoneSnapshot{
			1: {
				Zone:             1,
				Currency:         domain.CurrencyCS,
				Equipment:        []domain.EquipmentUnit{{Name: "excavator", RatePerDay: 0.5 * domain.SecondsPerDay}},
				Capacity:         domain.CapacityUnit{Name: "hold", MaxStorage: 500},
				TotalYield:       10000,
				LastCollectionAt: testStart.Add(-100 * time.Second),
			},
		},
	}
}

func postJSON(t *testing.T, h http.Handler, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getRequest(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}
