package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Punishment errors
	ErrMsgPunishmentNotFound   = "punishment not found"
	ErrMsgAlreadyPardoned      = "punishment is already pardoned"
	ErrMsgAlreadyStarted       = "punishment has already started"
	ErrMsgInvalidModification  = "invalid modification"
	ErrMsgCapabilityNotAllowed = "punishment type does not allow this action"

	// Catalog errors
	ErrMsgPunishmentTypeNotFound = "punishment type not found"
	ErrMsgReservedOrdinal        = "ordinals 0-5 are reserved for built-in administrative types"
	ErrMsgInvalidPunishmentType  = "invalid punishment type"
	ErrMsgCatalogUnavailable     = "punishment type catalog is not loaded"

	// Standing errors
	ErrMsgInvalidThresholds = "invalid status thresholds"
	ErrMsgInvalidSeverity   = "invalid severity"

	// Database/System errors
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Punishment errors
	ErrPunishmentNotFound   = errors.New(ErrMsgPunishmentNotFound)
	ErrAlreadyPardoned      = errors.New(ErrMsgAlreadyPardoned)
	ErrAlreadyStarted       = errors.New(ErrMsgAlreadyStarted)
	ErrInvalidModification  = errors.New(ErrMsgInvalidModification)
	ErrCapabilityNotAllowed = errors.New(ErrMsgCapabilityNotAllowed)

	// Catalog errors
	ErrPunishmentTypeNotFound = errors.New(ErrMsgPunishmentTypeNotFound)
	ErrReservedOrdinal        = errors.New(ErrMsgReservedOrdinal)
	ErrInvalidPunishmentType  = errors.New(ErrMsgInvalidPunishmentType)
	ErrCatalogUnavailable     = errors.New(ErrMsgCatalogUnavailable)

	// Standing errors
	ErrInvalidThresholds = errors.New(ErrMsgInvalidThresholds)
	ErrInvalidSeverity   = errors.New(ErrMsgInvalidSeverity)

	// Database/System errors
	ErrConnectionTimeout = errors.New(ErrMsgConnectionTimeout)
	ErrDatabaseError     = errors.New(ErrMsgDatabaseError)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
