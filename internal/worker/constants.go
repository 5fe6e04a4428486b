package worker

import "time"

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgQueueFull       = "Worker queue full, dropping job"
	LogMsgPoolStopped     = "Worker pool stopped"
)

// Log messages for standing recomputation
const (
	LogMsgRecomputeQueued   = "Standing recompute queued"
	LogMsgRecomputeNoPlayer = "Mutation event without player id, skipping recompute"
)

// Log messages for the expiry worker
const (
	LogMsgExpiryStartupFailed  = "Failed to load started punishments on startup"
	LogMsgExpiryScheduled      = "Scheduling punishment expiry"
	LogMsgExpiryCancelled      = "Cancelled punishment expiry"
	LogMsgExpiryFired          = "Punishment expiry fired"
	LogMsgExpiryReloadFailed   = "Failed to reload punishment at expiry"
	LogMsgExpiryRescheduled    = "Punishment still active at expiry, rescheduling"
	LogMsgExpiryPayloadInvalid = "Could not decode payload for expiry scheduling"
	LogMsgExpiryStartupLoaded  = "Scheduled expiries for started punishments"
)

// Error formats
const (
	ErrMsgRecompute = "recompute standing for player %s: %w"
)

// Timer worker names used in shutdown logs
const (
	ExpiryWorkerName = "expiry worker"
)

// DefaultJobTimeout bounds a single job's run time
const DefaultJobTimeout = 30 * time.Second
