package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older session logs kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting moderation standing service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"

	// NATSClientName identifies this service on the NATS server
	NATSClientName = "modstanding"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedCreateForwarder          = "failed to create %s forwarder"
	ErrMsgUnknownTransport               = "unknown event transport %q"
)

// =============================================================================
// Catalog Sync Messages
// =============================================================================

const (
	LogMsgSyncingCatalog      = "Syncing punishment type catalog from YAML config..."
	LogMsgCatalogFileMissing  = "Punishment type catalog file not found, using built-in types only"
	ErrMsgFailedLoadCatalog   = "failed to load punishment type catalog"
	ErrMsgFailedSeedCatalog   = "failed to seed punishment type catalog"
	LogMsgCatalogSyncComplete = "Punishment type catalog synced"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgRecomputeRegistered        = "Standing recompute dispatcher registered"
	LogMsgExpiryWorkerStarted        = "Expiry worker started"
	LogMsgNotifierRegistered         = "Discord escalation notifier registered"
	ErrMsgFailedStartExpiryWorker    = "failed to start expiry worker"
	ErrMsgFailedCreateNotifier       = "failed to create discord notifier"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgExpiryWorkerFailed         = "Expiry worker shutdown failed"
	LogMsgTransportCloseFailed       = "Event transport close failed"
)
