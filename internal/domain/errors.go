package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Zone/accrual errors
	ErrMsgZoneNotFound       = "zone not found"
	ErrMsgZoneNotActive      = "zone is not active"
	ErrMsgCollectionInFlight = "a collection is already in flight"
	ErrMsgStaleCollection    = "collection marker is stale"
	ErrMsgNothingToCollect   = "nothing to collect"
	ErrMsgPlayerNotTracked   = "player is not tracked"

	// Deposit errors
	ErrMsgDepositNotFound  = "deposit not found"
	ErrMsgDepositNotReady  = "deposit has not matured"
	ErrMsgDepositMatured   = "deposit has already matured"
	ErrMsgDepositFinalized = "deposit is already finalized"
	ErrMsgUnknownPlan      = "plan is not in the quoted set"

	// Exchange errors
	ErrMsgRateNotFound = "no rate for currency pair"

	// Balance errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Transport errors
	ErrMsgNetwork   = "authority unreachable"
	ErrMsgAuthority = "authority rejected request"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the engine.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Zone/accrual errors
	ErrZoneNotFound       = errors.New(ErrMsgZoneNotFound)
	ErrZoneNotActive      = errors.New(ErrMsgZoneNotActive)
	ErrCollectionInFlight = errors.New(ErrMsgCollectionInFlight)
	ErrStaleCollection    = errors.New(ErrMsgStaleCollection)
	ErrNothingToCollect   = errors.New(ErrMsgNothingToCollect)
	ErrPlayerNotTracked   = errors.New(ErrMsgPlayerNotTracked)

	// Deposit errors
	ErrDepositNotFound  = errors.New(ErrMsgDepositNotFound)
	ErrDepositNotReady  = errors.New(ErrMsgDepositNotReady)
	ErrDepositMatured   = errors.New(ErrMsgDepositMatured)
	ErrDepositFinalized = errors.New(ErrMsgDepositFinalized)
	ErrUnknownPlan      = errors.New(ErrMsgUnknownPlan)

	// Exchange errors
	ErrRateNotFound = errors.New(ErrMsgRateNotFound)

	// Balance errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Transport errors. ErrNetwork marks recoverable transport failures:
	// local state is untouched and the user may retry the same action.
	ErrNetwork   = errors.New(ErrMsgNetwork)
	ErrAuthority = errors.New(ErrMsgAuthority)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// OutOfRangeError reports a conversion amount outside the rate's source
// bounds. It is raised before any network call and carries the violated
// bound for the caller's message.
type OutOfRangeError struct {
	Amount float64
	Min    float64
	Max    float64
}

func (e *OutOfRangeError) Error() string {
	if e.Amount < e.Min {
		return fmt.Sprintf("amount %.8g below minimum %.8g", e.Amount, e.Min)
	}
	return fmt.Sprintf("amount %.8g above maximum %.8g", e.Amount, e.Max)
}

// IsRecoverable reports whether the error is a transient condition the user
// may retry without re-fetching state.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrNetwork)
}
