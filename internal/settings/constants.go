package settings

// Log Messages
const (
	LogMsgThresholdsUpdated = "Status thresholds updated"
)

// Error Messages
const (
	ErrMsgLoadThresholds = "failed to load status thresholds: %w"
	ErrMsgSaveThresholds = "failed to save status thresholds: %w"
)
