package notify

import "github.com/cosmoforge/minecore/internal/domain"

// CounterPayload is the per-zone predicted counter update
type CounterPayload struct {
	Zone       int     `json:"zone"`
	Counter    float64 `json:"counter"`
	TickRate   float64 `json:"tick_rate"`
	AtCapacity bool    `json:"at_capacity"`
}

// CapacityPayload is sent when a zone reaches or leaves its cap
type CapacityPayload struct {
	Zone       int     `json:"zone"`
	AtCapacity bool    `json:"at_capacity"`
	Counter    float64 `json:"counter"`
}

// CollectedPayload is sent after a confirmed collection
type CollectedPayload struct {
	Zone     int             `json:"zone"`
	Amount   float64         `json:"amount"`
	Currency domain.Currency `json:"currency"`
}

// StakePayload carries one deposit's state, remaining time and progress.
// RemainingSeconds and Progress are display values; the authoritative
// ready flag is Status + Ready, never the progress number.
type StakePayload struct {
	DepositID        string               `json:"deposit_id"`
	Zone             int                  `json:"zone"`
	Status           domain.DepositStatus `json:"status"`
	Ready            bool                 `json:"ready"`
	RemainingSeconds int64                `json:"remaining_seconds"`
	Progress         float64              `json:"progress"`
	ReturnAmount     float64              `json:"return_amount"`
	PenaltyAmount    float64              `json:"penalty_amount,omitempty"`
}
