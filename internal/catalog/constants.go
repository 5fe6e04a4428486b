package catalog

import "time"

// Cache settings
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute
	snapshotKey      = "catalog"
)

// Log messages
const (
	LogMsgCatalogSeeded   = "Punishment type catalog seeded"
	LogMsgTypeSeeded      = "Seeded punishment type"
	LogMsgTypeUpserted    = "Punishment type upserted"
	LogMsgCatalogLoadFail = "Failed to load punishment type catalog"
)

// Error messages
const (
	ErrMsgReadCatalogFile  = "failed to read catalog file %s: %w"
	ErrMsgParseCatalogFile = "failed to parse catalog file %s: %w"
	ErrMsgValidateCatalog  = "catalog file %s failed schema validation: %w"
	ErrMsgDuplicateOrdinal = "ordinal %d is defined more than once (%q and %q)"
	ErrMsgOrdinalRange     = "ordinal %d is outside 0-%d"
	ErrMsgNameRequired     = "name is required"
	ErrMsgUnknownCategory  = "unknown category %q"
	ErrMsgNegativePoints   = "points for %s must not be negative"
	ErrMsgMissingPoints    = "points for severity %s are required"
	ErrMsgMissingDuration  = "duration for %s is required"
	ErrMsgUnknownUnit      = "duration for %s has unknown unit %q"
	ErrMsgListTypes        = "failed to list punishment types: %w"
	ErrMsgUpsertType       = "failed to save punishment type %d: %w"
	ErrMsgSeedType         = "failed to seed punishment type %d: %w"
)
