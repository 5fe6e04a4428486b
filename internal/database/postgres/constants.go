package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a modification or note references a missing punishment
	PgErrorCodeForeignKeyViolation = "23503"

	constraintOnePardon = "idx_punishment_modifications_one_pardon"
)

// thresholdsRowID is the key of the single status_thresholds row
const thresholdsRowID = 1

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Punishments
const (
	ErrMsgFailedToGetPunishment      = "failed to get punishment"
	ErrMsgFailedToListPunishments    = "failed to list punishments"
	ErrMsgFailedToCreatePunishment   = "failed to create punishment"
	ErrMsgFailedToMarkStarted        = "failed to mark punishment started"
	ErrMsgFailedToAppendModification = "failed to append modification"
	ErrMsgFailedToAppendNote         = "failed to append note"
	ErrMsgFailedToLoadModifications  = "failed to load modifications"
	ErrMsgFailedToLoadNotes          = "failed to load notes"
	ErrMsgFailedToEncodeData         = "failed to encode punishment data"
	ErrMsgFailedToDecodeData         = "failed to decode punishment data"
)

// Error Messages - Catalog and Settings
const (
	ErrMsgFailedToListTypes      = "failed to list punishment types"
	ErrMsgFailedToGetType        = "failed to get punishment type"
	ErrMsgFailedToUpsertType     = "failed to upsert punishment type"
	ErrMsgFailedToEncodeType     = "failed to encode punishment type"
	ErrMsgFailedToDecodeType     = "failed to decode punishment type %d"
	ErrMsgFailedToGetThresholds  = "failed to get status thresholds"
	ErrMsgFailedToSaveThresholds = "failed to save status thresholds"
	ErrMsgFailedToSwapTier       = "failed to swap standing tier"
)
