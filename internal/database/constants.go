package database

import "time"

// Connection pool defaults
const (
	DefaultMinConnections = 2
	DefaultMaxConnections = 10
	PingTimeout           = 5 * time.Second
)

// Session settings applied to every pooled connection
const (
	RuntimeParamTimezone        = "timezone"
	RuntimeParamApplicationName = "application_name"
	SessionTimezone             = "UTC"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
