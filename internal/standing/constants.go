package standing

// Warnings surfaced with an aggregate
const (
	WarnMsgThresholdOrder  = "%s habitual threshold %d is below medium threshold %d; using %d for both"
	WarnMsgCatalogPending  = "punishment type catalog is not loaded; standing is pending"
	WarnMsgSkippedUnknown  = "%d active punishment(s) reference unknown types and were not counted"
	DefectMsgUnknownType   = "type ordinal %d is not in the catalog"
	DefectMsgUnknownSev    = "severity %q does not map to a bucket; contributes 0 points"
	FieldThresholds        = "thresholds"
	FieldTypeOrdinal       = "type_ordinal"
	FieldSeverity          = "severity"
	ErrMsgThresholdsOrder  = "%s habitual threshold (%d) must not be below medium threshold (%d)"
	ErrMsgListPunishments  = "failed to list punishments for player %s: %w"
	ErrMsgLoadCatalog      = "failed to load punishment catalog: %w"
	ErrMsgLoadThresholds   = "failed to load status thresholds: %w"
	ErrMsgSwapTier         = "failed to record %s standing tier for %s: %w"
	LogMsgStandingComputed = "Standing computed"
	LogMsgStandingPending  = "Standing pending, catalog unavailable"
	LogMsgTierChanged      = "Standing tier changed"
	LogMsgAggregateDefect  = "Standing data defect"
	LogMsgRecomputeFailed  = "Standing recompute failed"
)
