package catalog

import (
	"fmt"
	"strings"

	"github.com/osse101/modstanding/internal/domain"
)

var knownUnits = map[domain.DurationUnit]bool{
	domain.UnitSeconds: true,
	domain.UnitMinutes: true,
	domain.UnitHours:   true,
	domain.UnitDays:    true,
	domain.UnitWeeks:   true,
	domain.UnitMonths:  true,
}

// ValidateType checks a custom punishment type before it is stored.
// Reserved ordinals are rejected; built-in types are never stored.
func ValidateType(t domain.PunishmentType) error {
	if domain.IsReservedOrdinal(t.Ordinal) {
		return fmt.Errorf("%w: %d", domain.ErrReservedOrdinal, t.Ordinal)
	}
	if t.Ordinal < 0 || t.Ordinal > domain.MaxOrdinal {
		return invalid(ErrMsgOrdinalRange, t.Ordinal, domain.MaxOrdinal)
	}
	if strings.TrimSpace(t.Name) == "" {
		return invalid(ErrMsgNameRequired)
	}
	if !t.Category.Valid() {
		return invalid(ErrMsgUnknownCategory, t.Category)
	}

	if t.CustomPoints != nil && *t.CustomPoints < 0 {
		return invalid(ErrMsgNegativePoints, "custom_points")
	}

	if t.SingleSeverity {
		if t.SinglePoints < 0 {
			return invalid(ErrMsgNegativePoints, "single_points")
		}
		return validateTiers(t.SingleDurations, "single_durations")
	}

	for _, sev := range domain.Severities {
		points, ok := t.Points[sev]
		if !ok && t.CustomPoints == nil && !t.IsAdministrative() {
			return invalid(ErrMsgMissingPoints, sev)
		}
		if points < 0 {
			return invalid(ErrMsgNegativePoints, sev)
		}
		if err := validateTiers(t.Durations[sev], "durations."+string(sev)); err != nil {
			return err
		}
	}
	return nil
}

func validateTiers(row domain.TierDurations, field string) error {
	for _, tier := range domain.OffenseTiers {
		spec, ok := row[tier]
		name := field + "." + string(tier)
		if !ok {
			return invalid(ErrMsgMissingDuration, name)
		}
		if !spec.IsPermanent() && !knownUnits[domain.DurationUnit(strings.ToLower(string(spec.Unit)))] {
			return invalid(ErrMsgUnknownUnit, name, spec.Unit)
		}
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidPunishmentType, fmt.Sprintf(format, args...))
}
