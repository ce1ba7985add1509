package notify

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second
)

// Event types published by the engine
const (
	// EventTypeCounter carries the current predicted counter for a zone
	EventTypeCounter = "accrual.counter"

	// EventTypeCapacityReached is sent when a zone's counter freezes at its cap
	EventTypeCapacityReached = "accrual.capacity_reached"

	// EventTypeCollected is sent after the authority confirms a collection
	EventTypeCollected = "accrual.collected"

	// EventTypeStakeUpdated carries deposit state, remaining time and progress
	EventTypeStakeUpdated = "stake.updated"

	// EventTypeStakeMatured is sent when a deposit transitions to ready
	EventTypeStakeMatured = "stake.matured"

	// EventTypeStakeWithdrawn is sent after a confirmed withdrawal
	EventTypeStakeWithdrawn = "stake.withdrawn"

	// EventTypeStakeCancelled is sent after a confirmed early cancellation
	EventTypeStakeCancelled = "stake.cancelled"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgFlushError         = "Failed to flush SSE response"
)
