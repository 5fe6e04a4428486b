package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
	ErrMsgInvalidOrdinal        = "Invalid punishment type ordinal"
	ErrMsgInvalidStartedAt      = "started_at must be an RFC3339 timestamp"
	ErrMsgBodyTooLarge          = "Request body too large"
	ErrMsgInvalidCategory       = "category must be social or gameplay"
	ErrMsgOrdinalMismatch       = "Ordinal in body does not match the path"
)

// Operation names used in logs and error responses
const (
	OpListPunishments  = "List punishments"
	OpGetPunishment    = "Get punishment"
	OpApplyPunishment  = "Apply punishment"
	OpStartPunishment  = "Start punishment"
	OpModifyPunishment = "Modify punishment"
	OpAddNote          = "Add note"
	OpEvaluate         = "Evaluate punishment"
	OpGetStanding      = "Get standing"
	OpGetOffenseTier   = "Get offense tier"
	OpListTypes        = "List punishment types"
	OpGetType          = "Get punishment type"
	OpUpsertType       = "Upsert punishment type"
	OpGetThresholds    = "Get thresholds"
	OpUpdateThresholds = "Update thresholds"
)

// Success messages for API responses
const (
	MsgPunishmentApplied = "Punishment applied"
	MsgPunishmentStarted = "Punishment started"
	MsgModificationAdded = "Modification recorded"
	MsgNoteAdded         = "Note added"
	MsgTypeSaved         = "Punishment type saved"
	MsgThresholdsUpdated = "Thresholds updated"
)

// Path parameter names
const (
	ParamPlayerID     = "playerID"
	ParamPunishmentID = "punishmentID"
	ParamOrdinal      = "ordinal"
	QueryCategory     = "category"
)
