package accrual

import "time"

// Accrual timing constants
const (
	// DefaultTickInterval is how often predicted counters advance
	DefaultTickInterval = 100 * time.Millisecond

	// CounterBroadcastInterval is how often a moving counter is pushed to
	// subscribers. Between pushes the payload's tick_rate extrapolates.
	CounterBroadcastInterval = 1 * time.Second
)

// Log messages
const (
	LogMsgZoneActivated    = "Zone activated"
	LogMsgZoneDeactivated  = "Zone deactivated"
	LogMsgZoneReseeded     = "Zone counter re-seeded from authoritative state"
	LogMsgCollectConfirmed = "Collection confirmed"
	LogMsgCollectFailed    = "Collection failed"
)
