package authority

import "time"

// Request settings
const (
	DefaultTimeout = 10 * time.Second

	// Reads are retried; mutations are never retried automatically because
	// the engine cannot assume idempotency beyond the collection marker.
	MaxReadRetries = 3
	RetryBaseDelay = 500 * time.Millisecond
)

// API paths
const (
	PathSnapshot       = "/api/v1/player/%s/snapshot"
	PathCollect        = "/api/v1/player/%s/zone/%d/collect"
	PathCalculatePlans = "/api/v1/player/%s/stake/plans"
	PathCreateDeposit  = "/api/v1/player/%s/stake"
	PathWithdraw       = "/api/v1/player/%s/stake/%s/withdraw"
	PathCancel         = "/api/v1/player/%s/stake/%s/cancel"
	PathConvert        = "/api/v1/player/%s/convert"
	PathRates          = "/api/v1/exchange/rates"
)

// Log messages
const (
	LogMsgRetryingRequest = "Retrying authority request"
	LogMsgRequestFailed   = "Authority request failed"
	LogMsgServerError     = "Authority server error, will retry"
)
