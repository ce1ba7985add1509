package bootstrap

// Shutdown log messages
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgShuttingDownWorkers  = "Shutting down background workers..."
	LogMsgShuttingDownHub      = "Shutting down event hub..."
	LogMsgUntrackingPlayers    = "Deactivating tracked players..."
	LogMsgClosingDatabase      = "Closing database pool..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
)
