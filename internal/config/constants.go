package config

import "github.com/osse101/modstanding/internal/domain"

const (
	// Configuration file paths
	ConfigPathPunishmentTypes = "configs/punishment_types.yaml"
	ConfigPathSchemaDir       = "configs/schemas"
	ConfigPathDeadLetter      = "logs/event_deadletter.jsonl"
)

// Event transports
const (
	EventTransportMemory = "memory"
	EventTransportNATS   = "nats"
	EventTransportKafka  = "kafka"
)

// Default status thresholds
const (
	DefaultThresholdMedium   = domain.DefaultMediumThreshold
	DefaultThresholdHabitual = domain.DefaultHabitualThreshold
)

// Error messages
const (
	ErrMsgInvalidPort      = "invalid PORT value: %w"
	ErrMsgMissingAPIKey    = "API_KEY environment variable must be set for security"
	ErrMsgInvalidConfig    = "invalid configuration: %w"
	ErrMsgThresholdOrder   = "%s habitual threshold (%d) must not be lower than medium threshold (%d)"
	ErrMsgMissingTransport = "%s requires %s to be set"
)
