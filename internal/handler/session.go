package handler

import (
	"net/http"

	"github.com/cosmoforge/minecore/internal/accrual"
	"github.com/cosmoforge/minecore/internal/domain"
	"github.com/cosmoforge/minecore/internal/logger"
	"github.com/cosmoforge/minecore/internal/reconcile"
)

// ActivateSessionRequest starts tracking and simulating a player
type ActivateSessionRequest struct {
	PlayerID string `json:"player_id" validate:"required,min=1,max=64"`
}

// SessionResponse summarizes the freshly activated session
type SessionResponse struct {
	PlayerID string                      `json:"player_id"`
	Verified bool                        `json:"verified"`
	Balances map[domain.Currency]float64 `json:"balances"`
	Zones    []accrual.ZoneView          `json:"zones"`
	Deposits int                         `json:"deposits"`
}

// HandleActivateSession fetches the player's authoritative snapshot and
// begins zone simulation.
// @Summary Activate a player session
// @Tags session
// @Accept json
// @Produce json
// @Success 201 {object} DataResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /session/activate [post]
func HandleActivateSession(client *reconcile.Client, sim *accrual.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ActivateSessionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Activate session"); err != nil {
			return
		}

		snap, err := client.Track(r.Context(), req.PlayerID)
		if err != nil {
			respondServiceError(w, r, "Activate session", err)
			return
		}

		logger.FromContext(r.Context()).Info("Session activated", "playerID", req.PlayerID)
		respondJSON(w, http.StatusCreated, DataResponse{Data: SessionResponse{
			PlayerID: snap.PlayerID,
			Verified: snap.Verified,
			Balances: snap.Balances,
			Zones:    sim.View(req.PlayerID),
			Deposits: len(snap.Deposits),
		}})
	}
}

// DeactivateSessionRequest stops tracking a player
type DeactivateSessionRequest struct {
	PlayerID string `json:"player_id" validate:"required,min=1,max=64"`
}

// HandleDeactivateSession stops simulating a player's zones and drops the
// cached snapshot.
// @Summary Deactivate a player session
// @Tags session
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /session/deactivate [post]
func HandleDeactivateSession(client *reconcile.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeactivateSessionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Deactivate session"); err != nil {
			return
		}

		client.Untrack(r.Context(), req.PlayerID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "session deactivated"})
	}
}

// HandleGetSnapshot returns the last authoritative snapshot for a player.
// @Summary Get the cached authoritative snapshot
// @Tags session
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /session/snapshot [get]
func HandleGetSnapshot(client *reconcile.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		snap, err := client.Snapshot(playerID)
		if err != nil {
			respondServiceError(w, r, "Get snapshot", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: snap})
	}
}
