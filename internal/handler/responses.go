package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cosmoforge/minecore/internal/domain"
	"github.com/cosmoforge/minecore/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed operation and maps its error onto an
// HTTP response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error("Operation failed", "operation", opName, "error", err)
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// status codes and messages.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	var oor *domain.OutOfRangeError
	if errors.As(err, &oor) {
		return http.StatusBadRequest, oor.Error()
	}

	switch {
	case errors.Is(err, domain.ErrPlayerNotTracked):
		return http.StatusNotFound, ErrMsgPlayerNotTrackedError
	case errors.Is(err, domain.ErrZoneNotFound):
		return http.StatusNotFound, ErrMsgZoneNotFoundError
	case errors.Is(err, domain.ErrZoneNotActive):
		return http.StatusBadRequest, ErrMsgZoneNotActiveError
	case errors.Is(err, domain.ErrNothingToCollect):
		return http.StatusBadRequest, ErrMsgNothingToCollectError
	case errors.Is(err, domain.ErrCollectionInFlight):
		return http.StatusConflict, ErrMsgCollectInFlightError
	case errors.Is(err, domain.ErrStaleCollection):
		return http.StatusConflict, ErrMsgStaleCollectionError
	case errors.Is(err, domain.ErrDepositNotFound):
		return http.StatusNotFound, ErrMsgDepositNotFoundError
	case errors.Is(err, domain.ErrDepositNotReady):
		return http.StatusConflict, ErrMsgDepositNotReadyError
	case errors.Is(err, domain.ErrDepositMatured):
		return http.StatusConflict, ErrMsgDepositMaturedError
	case errors.Is(err, domain.ErrDepositFinalized):
		return http.StatusConflict, ErrMsgDepositFinalizedError
	case errors.Is(err, domain.ErrUnknownPlan):
		return http.StatusBadRequest, ErrMsgUnknownPlanError
	case errors.Is(err, domain.ErrRateNotFound):
		return http.StatusBadRequest, ErrMsgRateNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgInsufficientFundsError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway, ErrMsgAuthorityDownError
	case errors.Is(err, domain.ErrAuthority):
		return http.StatusBadGateway, ErrMsgAuthorityRejectedError
	}

	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
