package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Metadata keys
const (
	// MetadataKeyPlayerID carries the affected player, used as the transport partition key
	MetadataKeyPlayerID = "player_id"

	// MetadataKeySource identifies the component that emitted the event
	MetadataKeySource = "source"
)

// Retry configuration constants
const (
	// RetryQueueBufferSize is the buffer size for the retry queue
	RetryQueueBufferSize = 1000

	// RetryInitialDelay is the delay before the first retry
	RetryInitialDelay = 2 * time.Second

	// RetryMaxAttempts is the default maximum number of retry attempts
	RetryMaxAttempts = 5
)

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0o644
)

// Transport configuration
const (
	// NATSConnectTimeout bounds the initial broker handshake
	NATSConnectTimeout = 5 * time.Second

	// NATSReconnectWait is the pause between reconnect attempts
	NATSReconnectWait = 2 * time.Second

	// KafkaWriteTimeout bounds a single produce request
	KafkaWriteTimeout = 10 * time.Second

	// HeaderEventType is the message header carrying the event type
	HeaderEventType = "event_type"

	// HeaderSchemaVersion is the message header carrying the event schema version
	HeaderSchemaVersion = "schema_version"
)

// Log message constants
const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgForwardFailed         = "Failed to forward event to transport"
	LogMsgForwarderClosed       = "Event forwarder closed"
	LogMsgNATSDisconnected      = "NATS connection lost"
	LogMsgNATSReconnected       = "NATS connection restored"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %w"
)

// Error messages
const (
	ErrMsgConnectNATS    = "failed to connect to NATS at %s: %w"
	ErrMsgEncodeEvent    = "failed to encode event %s: %w"
	ErrMsgPublishNATS    = "failed to publish %s to NATS: %w"
	ErrMsgWriteKafka     = "failed to write %s to Kafka: %w"
	ErrMsgNoKafkaBrokers = "no Kafka brokers configured"
	ErrMsgOpenDeadLetter = "failed to open dead letter file %s: %w"
)

// CalculateRetryDelay calculates the exponential backoff delay for retry attempts.
// Formula: baseDelay * 2^(attempt-1), so 2s, 4s, 8s, 16s, 32s with the defaults.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
