package domain

import "time"

// PunishmentState is the display state derived from an effective state
type PunishmentState string

const (
	StateAwaiting PunishmentState = "awaiting"
	StateActive   PunishmentState = "active"
	StatePardoned PunishmentState = "pardoned"
	StateExpired  PunishmentState = "expired"
	StateInactive PunishmentState = "inactive"
)

// EffectiveState is the result of folding a punishment's modifications over its original values
type EffectiveState struct {
	Active               bool           `json:"active"`
	Expiry               *time.Time     `json:"expiry"`
	Duration             int64          `json:"duration"`
	HasModifications     bool           `json:"has_modifications"`
	OrderedModifications []Modification `json:"ordered_modifications"`
	Defects              []Defect       `json:"defects,omitempty"`
}

// IsPermanent reports whether the effective state has no expiry
func (s EffectiveState) IsPermanent() bool {
	return s.Expiry == nil
}

// DefectKind classifies data-quality problems found while deriving state
type DefectKind string

const (
	DefectMissingIssuedAt     DefectKind = "missing_issued_at"
	DefectInvalidTimestamp    DefectKind = "invalid_timestamp"
	DefectInvalidModification DefectKind = "invalid_modification"
	DefectUnknownType         DefectKind = "unknown_type"
	DefectUnknownSeverity     DefectKind = "unknown_severity"
	DefectThresholdOrder      DefectKind = "threshold_order"
)

// Defect is a diagnostic for an upstream data or configuration problem.
// Computations never fail on defects; they fall back and report them.
type Defect struct {
	Kind     DefectKind `json:"kind"`
	RecordID string     `json:"record_id,omitempty"`
	Field    string     `json:"field,omitempty"`
	Detail   string     `json:"detail"`
}
