package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cosmoforge/minecore/internal/accrual"
	"github.com/cosmoforge/minecore/internal/domain"
	"github.com/cosmoforge/minecore/internal/reconcile"
)

// HandleGetZones returns the predicted accrual state of all active zones
// for a player.
// @Summary List simulated zones
// @Tags zones
// @Produce json
// @Success 200 {object} DataResponse
// @Router /zones [get]
func HandleGetZones(sim *accrual.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: sim.View(playerID)})
	}
}

// CollectResponse reports a confirmed collection
type CollectResponse struct {
	Zone     int                         `json:"zone"`
	Amount   float64                     `json:"amount"`
	Balances map[domain.Currency]float64 `json:"balances"`
}

// HandleCollect triggers the collection of a zone's accrued counter. The
// amount credited is whatever the authority confirms, not the local
// prediction.
// @Summary Collect a zone's accrual
// @Tags zones
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /player/{playerID}/zone/{zone}/collect [post]
func HandleCollect(sim *accrual.Simulator, client *reconcile.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		zone, err := strconv.Atoi(chi.URLParam(r, "zone"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgZoneNotFoundError)
			return
		}

		amount, err := sim.Collect(r.Context(), playerID, zone)
		if err != nil {
			respondServiceError(w, r, "Collect", err)
			return
		}

		resp := CollectResponse{Zone: zone, Amount: amount}
		if snap, serr := client.Snapshot(playerID); serr == nil {
			resp.Balances = snap.Balances
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: resp})
	}
}
