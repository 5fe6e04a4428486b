package domain

import (
	"maps"
	"math"
	"strings"
	"time"
)

// Category groups punishment types for status aggregation
type Category string

const (
	CategoryAdministrative Category = "administrative"
	CategorySocial         Category = "social"
	CategoryGameplay       Category = "gameplay"
)

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryAdministrative, CategorySocial, CategoryGameplay:
		return true
	}
	return false
}

// Severity is the severity bucket chosen at issuance for multi-severity types
type Severity string

const (
	SeverityLow     Severity = "low"
	SeverityRegular Severity = "regular"
	SeveritySevere  Severity = "severe"
)

// Severities lists the buckets in ascending order
var Severities = []Severity{SeverityLow, SeverityRegular, SeveritySevere}

// DisplayName returns the staff-facing label
func (s Severity) DisplayName() string {
	switch s {
	case SeverityLow:
		return "Lenient"
	case SeverityRegular:
		return "Regular"
	case SeveritySevere:
		return "Aggravated"
	}
	return string(s)
}

// OffenseTier is the repeat-offense bucket used to pick the original duration
type OffenseTier string

const (
	OffenseFirst    OffenseTier = "first"
	OffenseMedium   OffenseTier = "medium"
	OffenseHabitual OffenseTier = "habitual"
)

// OffenseTiers lists the tiers in ascending order
var OffenseTiers = []OffenseTier{OffenseFirst, OffenseMedium, OffenseHabitual}

// Valid reports whether t is a known offense tier
func (t OffenseTier) Valid() bool {
	switch t {
	case OffenseFirst, OffenseMedium, OffenseHabitual:
		return true
	}
	return false
}

// DurationUnit is the unit of a configured duration amount
type DurationUnit string

const (
	UnitSeconds DurationUnit = "seconds"
	UnitMinutes DurationUnit = "minutes"
	UnitHours   DurationUnit = "hours"
	UnitDays    DurationUnit = "days"
	UnitWeeks   DurationUnit = "weeks"
	UnitMonths  DurationUnit = "months"
)

// DaysPerMonth is the fixed month length used for duration tables
const DaysPerMonth = 30

// DurationSpec is one cell of a duration table. A zero Value means permanent.
type DurationSpec struct {
	Value int64        `json:"value" yaml:"value"`
	Unit  DurationUnit `json:"unit" yaml:"unit"`
}

// IsPermanent reports whether d denotes a permanent punishment
func (d DurationSpec) IsPermanent() bool {
	return d.Value <= 0
}

// Duration converts d to a time.Duration (0 when permanent or unit unknown).
// Values past the time.Duration range saturate.
func (d DurationSpec) Duration() time.Duration {
	return MillisToDuration(d.Milliseconds())
}

// Milliseconds returns the duration in milliseconds, saturating at math.MaxInt64
func (d DurationSpec) Milliseconds() int64 {
	if d.IsPermanent() {
		return 0
	}
	var unit time.Duration
	switch DurationUnit(strings.ToLower(string(d.Unit))) {
	case UnitSeconds:
		unit = time.Second
	case UnitMinutes:
		unit = time.Minute
	case UnitHours:
		unit = time.Hour
	case UnitDays:
		unit = 24 * time.Hour
	case UnitWeeks:
		unit = 7 * 24 * time.Hour
	case UnitMonths:
		unit = DaysPerMonth * 24 * time.Hour
	default:
		return 0
	}
	unitMs := unit.Milliseconds()
	if d.Value > math.MaxInt64/unitMs {
		return math.MaxInt64
	}
	return d.Value * unitMs
}

// TierDurations maps an offense tier to its duration
type TierDurations map[OffenseTier]DurationSpec

// SeverityDurations maps severity x offense tier to a duration
type SeverityDurations map[Severity]TierDurations

// Lookup returns the duration for a severity and tier
func (d SeverityDurations) Lookup(severity Severity, tier OffenseTier) (DurationSpec, bool) {
	row, ok := d[severity]
	if !ok {
		return DurationSpec{}, false
	}
	spec, ok := row[tier]
	return spec, ok
}

// PunishmentType is the admin-defined configuration for a kind of punishment
type PunishmentType struct {
	Ordinal          int      `json:"ordinal" yaml:"ordinal"`
	Name             string   `json:"name" yaml:"name"`
	Description      string   `json:"description,omitempty" yaml:"description"`
	StaffDescription string   `json:"staff_description,omitempty" yaml:"staff_description"`
	Category         Category `json:"category" yaml:"category"`

	// SingleSeverity types have one duration row and one point value
	SingleSeverity  bool              `json:"single_severity" yaml:"single_severity"`
	SingleDurations TierDurations     `json:"single_durations,omitempty" yaml:"single_durations"`
	Durations       SeverityDurations `json:"durations,omitempty" yaml:"durations"`

	Points       map[Severity]int `json:"points,omitempty" yaml:"points"`
	SinglePoints int              `json:"single_points,omitempty" yaml:"single_points"`
	CustomPoints *int             `json:"custom_points,omitempty" yaml:"custom_points"`

	CanAltBlock  bool `json:"can_alt_block" yaml:"can_alt_block"`
	CanStatWipe  bool `json:"can_stat_wipe" yaml:"can_stat_wipe"`
	IsAppealable bool `json:"is_appealable" yaml:"is_appealable"`
}

// IsAdministrative reports whether the type never contributes status points
func (t PunishmentType) IsAdministrative() bool {
	return t.Category == CategoryAdministrative
}

// IsBuiltin reports whether the ordinal is one of the reserved administrative types
func (t PunishmentType) IsBuiltin() bool {
	return IsReservedOrdinal(t.Ordinal)
}

// DurationFor returns the original duration for an issuance of this type.
// severity is ignored for single-severity types.
func (t PunishmentType) DurationFor(severity *Severity, tier OffenseTier) (DurationSpec, bool) {
	if t.SingleSeverity {
		spec, ok := t.SingleDurations[tier]
		return spec, ok
	}
	if severity == nil {
		return DurationSpec{}, false
	}
	return t.Durations.Lookup(*severity, tier)
}

// Catalog is a snapshot of punishment types keyed by ordinal
type Catalog map[int]PunishmentType

// Lookup returns the type for an ordinal
func (c Catalog) Lookup(ordinal int) (PunishmentType, bool) {
	t, ok := c[ordinal]
	return t, ok
}

// Clone returns a copy of t that shares no maps or pointers with it
func (t PunishmentType) Clone() PunishmentType {
	out := t
	out.SingleDurations = maps.Clone(t.SingleDurations)
	if t.Durations != nil {
		out.Durations = make(SeverityDurations, len(t.Durations))
		for sev, row := range t.Durations {
			out.Durations[sev] = maps.Clone(row)
		}
	}
	out.Points = maps.Clone(t.Points)
	if t.CustomPoints != nil {
		v := *t.CustomPoints
		out.CustomPoints = &v
	}
	return out
}

// Clone returns a deep copy of c
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	for ordinal, t := range c {
		out[ordinal] = t.Clone()
	}
	return out
}
