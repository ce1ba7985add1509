package reconcile

import "time"

// DefaultRefreshInterval is the cadence of the periodic snapshot refresh.
const DefaultRefreshInterval = 5 * time.Second

// Log messages
const (
	LogMsgPlayerTracked     = "Player tracked"
	LogMsgPlayerUntracked   = "Player untracked"
	LogMsgRefreshFailed     = "Snapshot refresh failed, will retry next cycle"
	LogMsgRefreshDiscarded  = "Snapshot refresh discarded, superseded by a confirmed mutation"
	LogMsgCollectionStale   = "Collection marker stale, re-fetching authoritative snapshot"
	LogMsgSnapshotRefreshed = "Authoritative snapshot refreshed"
)
