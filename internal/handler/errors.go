package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
)

// User-facing error messages derived from domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgPlayerNotTrackedError = "No active session for that player. Activate one first."
	ErrMsgZoneNotFoundError     = "Zone not found"
	ErrMsgZoneNotActiveError    = "Zone is not being simulated"
	ErrMsgNothingToCollectError = "Nothing to collect yet"
	ErrMsgCollectInFlightError  = "Collection already in progress"
	ErrMsgStaleCollectionError  = "State was out of date and has been refreshed. Try again."

	ErrMsgDepositNotFoundError  = "Deposit not found"
	ErrMsgDepositNotReadyError  = "Deposit has not matured yet"
	ErrMsgDepositMaturedError   = "Deposit has matured; withdraw it instead"
	ErrMsgDepositFinalizedError = "Deposit is already settled"
	ErrMsgUnknownPlanError      = "That plan was not offered"

	ErrMsgRateNotFoundError      = "No exchange rate for that pair"
	ErrMsgInsufficientFundsError = "Not enough funds"

	ErrMsgAuthorityDownError     = "Game server is unreachable. Try again shortly."
	ErrMsgAuthorityRejectedError = "Game server rejected the request"
)
