package punishment

// Field names reported in defects
const (
	FieldIssuedAt          = "issued_at"
	FieldStartedAt         = "started_at"
	FieldOriginalExpiry    = "original_expiry"
	FieldEffectiveDuration = "effective_duration"
	FieldType              = "type"
	FieldData              = "data"
)

// Defect details
const (
	DefectMsgMissingIssuedAt  = "%s modification on punishment %s has no valid issue time; ordered first"
	DefectMsgMissingDuration  = "duration change without an effective duration was ignored"
	DefectMsgInvalidTimestamp = "unparsable timestamp %q"
	DefectMsgStartedFallback  = "unparsable start time %q; using issue time"
	DefectMsgExpiryDerived    = "unparsable expiry %q; derived from start time and duration"
	DefectMsgUnknownModType   = "unknown modification type %q is recorded but has no effect"
)

// Display labels
const (
	LabelPermanent = "Permanent"
)

// Error messages
const (
	ErrMsgDecodePunishment   = "failed to decode punishment: %w"
	ErrMsgDecodeBatch        = "failed to decode punishment list: %w"
	ErrMsgSchemaRejected     = "punishment %d rejected by schema: %w"
	ErrMsgUnsupportedData    = "unsupported data shape"
	ErrMsgNoTypeOrdinal      = "record has no type ordinal"
	ErrMsgGetPunishment      = "failed to get punishment %s: %w"
	ErrMsgListPunishments    = "failed to list punishments for player %s: %w"
	ErrMsgCreatePunishment   = "failed to create punishment: %w"
	ErrMsgAppendModification = "failed to append modification: %w"
	ErrMsgAppendNote         = "failed to append note: %w"
	ErrMsgMarkStarted        = "failed to mark punishment started: %w"
	ErrMsgGetType            = "failed to get punishment type %d: %w"
	ErrMsgGetCatalog         = "failed to load punishment catalog: %w"
	ErrMsgReasonRequired     = "reason is required"
	ErrMsgReasonTooLong      = "reason exceeds %d characters"
	ErrMsgSeverityRequired   = "severity is required for multi-severity types"
	ErrMsgSeverityUnknown    = "unknown severity %q"
	ErrMsgDurationRequired   = "duration is required for this punishment type"
	ErrMsgDurationNotTable   = "no duration configured for severity %q and offense tier %q"
	ErrMsgOffenseTierUnknown = "unknown offense tier %q"
	ErrMsgModTypeUnknown     = "unknown modification type %q"
	ErrMsgDurationMissing    = "effective_duration is required for duration changes"
	ErrMsgDurationNegative   = "effective_duration must not be negative"
	ErrMsgImmediateDuration  = "one-shot punishments cannot change duration"
	ErrMsgNoteEmpty          = "note text is required"
	ErrMsgNoteTooLong        = "note exceeds %d characters"
)

// Log messages
const (
	LogMsgDataDefect          = "Punishment data defect"
	LogMsgPunishmentApplied   = "Punishment applied"
	LogMsgPunishmentStarted   = "Punishment started"
	LogMsgPunishmentModified  = "Punishment modified"
	LogMsgNoteAdded           = "Punishment note added"
	LogMsgStandingUnavailable = "Standing unavailable, defaulting offense tier"
	LogMsgPardonAfterPardon   = "Rejected second pardon"
)
