package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Moderation metric names
const (
	MetricNamePunishmentsApplied    = "punishments_applied_total"
	MetricNamePunishmentsStarted    = "punishments_started_total"
	MetricNameModifications         = "punishment_modifications_total"
	MetricNamePunishmentsExpired    = "punishments_expired_total"
	MetricNameDataDefects           = "punishment_data_defects_total"
	MetricNameStandingComputations  = "standing_computations_total"
	MetricNameStandingDuration      = "standing_aggregation_duration_seconds"
	MetricNameStandingTierChanges   = "standing_tier_changes_total"
	MetricNameScheduledExpiryTimers = "punishment_expiry_timers"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Moderation metric help text
const (
	HelpTextPunishmentsApplied    = "Total number of punishments issued"
	HelpTextPunishmentsStarted    = "Total number of punishments executed on the target system"
	HelpTextModifications         = "Total number of modifications appended to punishments"
	HelpTextPunishmentsExpired    = "Total number of punishments that reached their effective expiry"
	HelpTextDataDefects           = "Total number of punishment data defects detected while deriving state"
	HelpTextStandingComputations  = "Total number of player standing computations"
	HelpTextStandingDuration      = "Player standing aggregation latency in seconds"
	HelpTextStandingTierChanges   = "Total number of player status tier changes"
	HelpTextScheduledExpiryTimers = "Current number of scheduled punishment expiry timers"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelCategory  = "category"
	LabelKind      = "kind"
	LabelOutcome   = "outcome"
	LabelDirection = "direction"
)

// Label values
const (
	OutcomeComputed = "computed"
	OutcomePending  = "pending"
	OutcomeError    = "error"
	DirectionUp     = "escalated"
	DirectionDown   = "deescalated"
	PathUnmatched   = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// StandingLatencyBuckets covers in-memory folds from 10µs to 100ms
var StandingLatencyBuckets = []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
