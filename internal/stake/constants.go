package stake

import "time"

// Plan quote cache settings. Quotes are cheap to recompute server-side but
// the UI re-requests them on every slider move, so a short TTL cache keeps
// that chatter off the wire.
const (
	PlanCacheSize = 256
	PlanCacheTTL  = 30 * time.Second
)

// DefaultRefreshInterval is the cadence of the maturation countdown sweep.
const DefaultRefreshInterval = time.Second

// Audit actions recorded for confirmed lifecycle mutations
const (
	ActionDepositCreated   = "deposit_created"
	ActionDepositWithdrawn = "deposit_withdrawn"
	ActionDepositCancelled = "deposit_cancelled"
)

// Stake transition metric labels
const (
	TransitionCreated   = "created"
	TransitionMatured   = "matured"
	TransitionWithdrawn = "withdrawn"
	TransitionCancelled = "cancelled"
)

// Log messages
const (
	LogMsgPlansQuoted      = "Deposit plans quoted"
	LogMsgDepositCreated   = "Deposit created"
	LogMsgDepositWithdrawn = "Deposit withdrawn"
	LogMsgDepositCancelled = "Deposit cancelled"
	LogMsgDepositMatured   = "Deposit matured"
	LogMsgWithdrawRejected = "Withdrawal rejected"
	LogMsgCancelRejected   = "Cancellation rejected"
)
