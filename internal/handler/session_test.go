package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmoforge/minecore/internal/domain"
)

func TestHandleActivateSession(t *testing.T) {
	env := newTestEnv(&fakeRemote{snap: playerSnap("p1")})
	h := HandleActivateSession(env.client, env.sim)

	rec := postJSON(t, h, "/", ActivateSessionRequest{PlayerID: "p1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SessionResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "p1", resp.PlayerID)
	assert.Equal(t, 100.0, resp.Balances[domain.CurrencyCS])
	require.Len(t, resp.Zones, 1)
	assert.InDelta(t, 50, resp.Zones[0].Counter, 0.01)
	assert.Equal(t, 0, resp.Deposits)
}

func TestHandleActivateSessionMissingPlayerID(t *testing.T) {
	env := newTestEnv(&fakeRemote{snap: playerSnap("p1")})
	h := HandleActivateSession(env.client, env.sim)

	rec := postJSON(t, h, "/", ActivateSessionRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "playerid")
}

func TestHandleActivateSessionAuthorityDown(t *testing.T) {
	remote := &fakeRemote{snapErr: fmt.Errorf("%w: connection refused", domain.ErrNetwork)}
	env := newTestEnv(remote)
	h := HandleActivateSession(env.client, env.sim)

	rec := postJSON(t, h, "/", ActivateSessionRequest{PlayerID: "p1"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, ErrMsgAuthorityDownError, decodeError(t, rec))
}

func TestHandleDeactivateSession(t *testing.T) {
	env := newTestEnv(&fakeRemote{snap: playerSnap("p1")})
	env.track(t, "p1")

	rec := postJSON(t, HandleDeactivateSession(env.client), "/", DeactivateSessionRequest{PlayerID: "p1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = getRequest(HandleGetSnapshot(env.client), "/?player_id=p1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrMsgPlayerNotTrackedError, decodeError(t, rec))
}

func TestHandleGetSnapshot(t *testing.T) {
	env := newTestEnv(&fakeRemote{snap: playerSnap("p1")})
	env.track(t, "p1")

	rec := getRequest(HandleGetSnapshot(env.client), "/?player_id=p1")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap domain.PlayerSnapshot
	decodeData(t, rec, &snap)
	assert.Equal(t, "p1", snap.PlayerID)
	assert.Contains(t, snap.Zones, 1)
}

func TestHandleGetSnapshotMissingParam(t *testing.T) {
	env := newTestEnv(&fakeRemote{snap: playerSnap("p1")})

	rec := getRequest(HandleGetSnapshot(env.client), "/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
