package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDeadLetterPath is the file path for dead-letter event logging
	EventDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized    = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
	LogMsgFailedCreateDeadLetter    = "failed to create dead-letter writer"
)

// =============================================================================
// Storage Messages
// =============================================================================

const (
	LogMsgStorageInitialized   = "Storage backend initialized"
	ErrMsgUnknownBackend       = "unknown storage backend"
	ErrMsgFailedConnectStorage = "failed to connect storage backend"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgRoundControllerFailed      = "Round controller shutdown failed"
	LogMsgIntegratorFailed           = "Physics integrator shutdown failed"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
