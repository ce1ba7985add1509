package handler

import (
	"net/http"
	"strconv"

	"github.com/cosmoforge/minecore/internal/eventlog"
)

// HandleGetAuditHistory returns a player's recent confirmed mutations,
// optionally narrowed to one action.
// @Summary Audit history
// @Tags audit
// @Produce json
// @Success 200 {object} DataResponse
// @Router /audit [get]
func HandleGetAuditHistory(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		limit, _ := strconv.Atoi(GetOptionalQueryParam(r, "limit", "0"))

		var (
			records []eventlog.Record
			err     error
		)
		if action := GetOptionalQueryParam(r, "action", ""); action != "" {
			records, err = svc.Query(r.Context(), eventlog.Filter{
				PlayerID: &playerID,
				Action:   &action,
				Limit:    limit,
			})
		} else {
			records, err = svc.History(r.Context(), playerID, limit)
		}
		if err != nil {
			respondServiceError(w, r, "Audit history", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: records})
	}
}
