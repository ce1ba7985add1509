package handler

import (
	"net/http"
	"strings"

	"github.com/cosmoforge/minecore/internal/domain"
	"github.com/cosmoforge/minecore/internal/exchange"
	"github.com/cosmoforge/minecore/internal/reconcile"
)

// HandleGetRates returns the current exchange rate table.
// @Summary List exchange rates
// @Tags exchange
// @Produce json
// @Success 200 {object} DataResponse
// @Router /exchange/rates [get]
func HandleGetRates(svc exchange.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: svc.Rates()})
	}
}

// ConvertRequest exchanges one currency for another
type ConvertRequest struct {
	PlayerID string  `json:"player_id" validate:"required,min=1,max=64"`
	From     string  `json:"from" validate:"required,currency"`
	To       string  `json:"to" validate:"required,currency"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// ConvertResponse reports a confirmed conversion
type ConvertResponse struct {
	Conversion domain.Conversion           `json:"conversion"`
	Balances   map[domain.Currency]float64 `json:"balances"`
}

// HandleConvert performs a conversion at the authority. Bounds, rate
// existence and balance are checked before the network call.
// @Summary Convert currency
// @Tags exchange
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /exchange/convert [post]
func HandleConvert(svc exchange.Service, client *reconcile.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConvertRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Convert"); err != nil {
			return
		}

		from := domain.Currency(strings.ToUpper(req.From))
		to := domain.Currency(strings.ToUpper(req.To))

		conv, err := svc.Convert(r.Context(), req.PlayerID, req.Amount, from, to)
		if err != nil {
			respondServiceError(w, r, "Convert", err)
			return
		}

		resp := ConvertResponse{Conversion: *conv}
		if snap, serr := client.Snapshot(req.PlayerID); serr == nil {
			resp.Balances = snap.Balances
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: resp})
	}
}

// QuoteRequest previews a conversion without executing it
type QuoteRequest struct {
	PlayerID string  `json:"player_id" validate:"required,min=1,max=64"`
	From     string  `json:"from" validate:"required,currency"`
	To       string  `json:"to" validate:"required,currency"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// HandleQuote previews what a conversion would yield, including the
// commission the player would be charged.
// @Summary Quote a conversion
// @Tags exchange
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /exchange/quote [post]
func HandleQuote(svc exchange.Service, client *reconcile.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuoteRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Quote conversion"); err != nil {
			return
		}

		snap, err := client.Snapshot(req.PlayerID)
		if err != nil {
			respondServiceError(w, r, "Quote conversion", err)
			return
		}

		from := domain.Currency(strings.ToUpper(req.From))
		to := domain.Currency(strings.ToUpper(req.To))

		conv, err := svc.Quote(from, to, req.Amount, snap.Verified)
		if err != nil {
			respondServiceError(w, r, "Quote conversion", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: conv})
	}
}
