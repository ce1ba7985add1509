package handler

import (
	"net/http"

	"github.com/cosmoforge/minecore/internal/domain"
	"github.com/cosmoforge/minecore/internal/stake"
)

// StakeHandler groups the deposit lifecycle endpoints
type StakeHandler struct {
	service stake.Service
}

// NewStakeHandler creates a new stake handler
func NewStakeHandler(service stake.Service) *StakeHandler {
	return &StakeHandler{service: service}
}

// PlansRequest asks for the quoted terms for a principal
type PlansRequest struct {
	PlayerID  string  `json:"player_id" validate:"required,min=1,max=64"`
	Zone      int     `json:"zone" validate:"gte=0"`
	Principal float64 `json:"principal" validate:"required,gt=0"`
}

// HandlePlans quotes deposit plans for a principal.
// @Summary Quote deposit plans
// @Tags stake
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /stake/plans [post]
func (h *StakeHandler) HandlePlans(w http.ResponseWriter, r *http.Request) {
	var req PlansRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Quote plans"); err != nil {
		return
	}

	plans, err := h.service.Plans(r.Context(), req.PlayerID, req.Zone, req.Principal)
	if err != nil {
		respondServiceError(w, r, "Quote plans", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: plans})
}

// CreateDepositRequest locks a principal into a quoted plan
type CreateDepositRequest struct {
	PlayerID  string  `json:"player_id" validate:"required,min=1,max=64"`
	Zone      int     `json:"zone" validate:"gte=0"`
	Principal float64 `json:"principal" validate:"required,gt=0"`
	Plan      struct {
		Duration int     `json:"duration" validate:"required,gt=0"`
		Unit     string  `json:"unit" validate:"required,timeunit"`
		Percent  float64 `json:"percent" validate:"gte=0"`
	} `json:"plan" validate:"required"`
}

// HandleCreate opens a fixed-term deposit.
// @Summary Create a deposit
// @Tags stake
// @Accept json
// @Produce json
// @Success 201 {object} DataResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /stake [post]
func (h *StakeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateDepositRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create deposit"); err != nil {
		return
	}

	plan := domain.Plan{
		Duration: req.Plan.Duration,
		Unit:     domain.TimeUnit(req.Plan.Unit),
		Percent:  req.Plan.Percent,
	}

	dep, err := h.service.Create(r.Context(), req.PlayerID, req.Zone, req.Principal, plan)
	if err != nil {
		respondServiceError(w, r, "Create deposit", err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Data: dep})
}

// DepositActionRequest addresses one existing deposit
type DepositActionRequest struct {
	PlayerID  string `json:"player_id" validate:"required,min=1,max=64"`
	DepositID string `json:"deposit_id" validate:"required,min=1,max=64"`
}

// HandleWithdraw settles a matured deposit.
// @Summary Withdraw a matured deposit
// @Tags stake
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /stake/withdraw [post]
func (h *StakeHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req DepositActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Withdraw deposit"); err != nil {
		return
	}

	dep, err := h.service.Withdraw(r.Context(), req.PlayerID, req.DepositID)
	if err != nil {
		respondServiceError(w, r, "Withdraw deposit", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: dep})
}

// HandleCancel breaks an active deposit early for the penalized principal.
// @Summary Cancel an active deposit
// @Tags stake
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /stake/cancel [post]
func (h *StakeHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	var req DepositActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Cancel deposit"); err != nil {
		return
	}

	dep, err := h.service.Cancel(r.Context(), req.PlayerID, req.DepositID)
	if err != nil {
		respondServiceError(w, r, "Cancel deposit", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: dep})
}

// HandleGetDeposits lists a player's deposits with countdown state.
// @Summary List deposits
// @Tags stake
// @Produce json
// @Success 200 {object} DataResponse
// @Router /stake [get]
func (h *StakeHandler) HandleGetDeposits(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetQueryParam(r, w, "player_id")
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: h.service.View(playerID)})
}
