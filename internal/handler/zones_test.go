package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmoforge/minecore/internal/accrual"
	"github.com/cosmoforge/minecore/internal/domain"
)

func collectRouter(env *testEnv) http.Handler {
	r := chi.NewRouter()
	r.Post("/player/{playerID}/zone/{zone}/collect", HandleCollect(env.sim, env.client))
	return r
}

func TestHandleGetZones(t *testing.T) {
	env := newTestEnv(&fakeRemote{snap: playerSnap("p1")})
	env.track(t, "p1")

	rec := getRequest(HandleGetZones(env.sim), "/?player_id=p1")
	require.Equal(t, http.StatusOK, rec.Code)

	var zones []accrual.ZoneView
	decodeData(t, rec, &zones)
	require.Len(t, zones, 1)
	assert.Equal(t, 1, zones[0].Zone)
	assert.InDelta(t, 50, zones[0].Counter, 0.01)
}

func TestHandleGetZonesMissingParam(t *testing.T) {
	env := newTestEnv(&fakeRemote{snap: playerSnap("p1")})

	rec := getRequest(HandleGetZones(env.sim), "/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCollect(t *testing.T) {
	snap := playerSnap("p1")
	confirmed := snap.Clone()
	z := confirmed.Zones[1]
	z.CollectedSoFar = 42
	z.LastCollectionAt = testStart
	confirmed.Zones[1] = z
	confirmed.Balances[domain.CurrencyCS] = 142

	env := newTestEnv(&fakeRemote{snap: snap, collectSnap: confirmed})
	env.track(t, "p1")

	rec := postJSON(t, collectRouter(env), "/player/p1/zone/1/collect", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CollectResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, 1, resp.Zone)
	assert.InDelta(t, 42, resp.Amount, 1e-9)
	assert.Equal(t, 142.0, resp.Balances[domain.CurrencyCS])
}

func TestHandleCollectInvalidZoneParam(t *testing.T) {
	env := newTestEnv(&fakeRemote{snap: playerSnap("p1")})
	env.track(t, "p1")

	rec := postJSON(t, collectRouter(env), "/player/p1/zone/abc/collect", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrMsgZoneNotFoundError, decodeError(t, rec))
}

func TestHandleCollectNothingAccrued(t *testing.T) {
	snap := playerSnap("p1")
	z := snap.Zones[1]
	z.LastCollectionAt = testStart
	snap.Zones[1] = z

	env := newTestEnv(&fakeRemote{snap: snap})
	env.track(t, "p1")

	rec := postJSON(t, collectRouter(env), "/player/p1/zone/1/collect", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrMsgNothingToCollectError, decodeError(t, rec))
}

func TestHandleCollectStaleMarker(t *testing.T) {
	snap := playerSnap("p1")
	env := newTestEnv(&fakeRemote{snap: snap, collectErr: domain.ErrStaleCollection})
	env.track(t, "p1")
	env.clk.Advance(10 * time.Second)

	rec := postJSON(t, collectRouter(env), "/player/p1/zone/1/collect", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ErrMsgStaleCollectionError, decodeError(t, rec))
}
