package eventlog

// DefaultQueryLimit bounds audit queries that do not specify one.
const DefaultQueryLimit = 100

// Log messages - service
const (
	LogMsgRecordFailed = "Failed to write audit record"
	LogMsgRecorded     = "Audit record written"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting audit cleanup job"
	LogMsgCleanupJobFailed    = "Audit cleanup failed"
	LogMsgCleanupJobCompleted = "Audit cleanup completed"
)
