package standing

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/punishment"
)

var validate = validator.New()

// Aggregate sums the points of a player's currently active punishments per category
// and maps each total to a status tier. It never fails: unknown types and
// unmapped severities are skipped and reported in the result.
func Aggregate(instances []domain.PunishmentInstance, catalog domain.Catalog, thresholds domain.StatusThresholds, now time.Time) domain.StatusAggregate {
	effective, warnings, defects := EffectiveThresholds(thresholds)

	agg := domain.StatusAggregate{
		SocialStatus:   domain.StatusLow,
		GameplayStatus: domain.StatusLow,
		Warnings:       warnings,
		Defects:        defects,
	}

	if len(catalog) == 0 {
		agg.Pending = true
		agg.Warnings = append(agg.Warnings, WarnMsgCatalogPending)
		return agg
	}

	for _, p := range instances {
		es := punishment.Reduce(p, now)
		if !punishment.IsCurrentlyActive(p, es, now) {
			continue
		}

		t, ok := catalog.Lookup(p.TypeOrdinal)
		if !ok {
			agg.SkippedUnknownTypes++
			agg.Defects = append(agg.Defects, domain.Defect{
				Kind:     domain.DefectUnknownType,
				RecordID: p.ID,
				Field:    FieldTypeOrdinal,
				Detail:   fmt.Sprintf(DefectMsgUnknownType, p.TypeOrdinal),
			})
			continue
		}
		agg.ActiveCount++

		points, mapped := PointsFor(t, p.Severity)
		if !mapped {
			raw := ""
			if p.Severity != nil {
				raw = string(*p.Severity)
			}
			agg.Defects = append(agg.Defects, domain.Defect{
				Kind:     domain.DefectUnknownSeverity,
				RecordID: p.ID,
				Field:    FieldSeverity,
				Detail:   fmt.Sprintf(DefectMsgUnknownSev, raw),
			})
		}

		switch t.Category {
		case domain.CategorySocial:
			agg.SocialPoints += points
		case domain.CategoryGameplay:
			agg.GameplayPoints += points
		}
	}

	if agg.SkippedUnknownTypes > 0 {
		agg.Warnings = append(agg.Warnings, fmt.Sprintf(WarnMsgSkippedUnknown, agg.SkippedUnknownTypes))
	}

	agg.SocialStatus = Tier(agg.SocialPoints, effective.Social)
	agg.GameplayStatus = Tier(agg.GameplayPoints, effective.Gameplay)
	return agg
}

// PointsFor returns what one active punishment of type t contributes.
// mapped is false when a multi-severity type has a missing or unknown severity,
// in which case the contribution is 0.
func PointsFor(t domain.PunishmentType, severity *domain.Severity) (points int, mapped bool) {
	switch {
	case t.IsAdministrative():
		return 0, true
	case t.CustomPoints != nil:
		return *t.CustomPoints, true
	case t.SingleSeverity:
		return t.SinglePoints, true
	case severity == nil:
		return 0, false
	}

	bucket, ok := domain.NormalizeSeverity(string(*severity))
	if !ok {
		return 0, false
	}
	return t.Points[bucket], true
}

// Tier maps a point total to a status tier, checking the habitual boundary first
func Tier(points int, t domain.TierThresholds) domain.StatusTier {
	switch {
	case points >= t.Habitual:
		return domain.StatusHabitual
	case points >= t.Medium:
		return domain.StatusMedium
	default:
		return domain.StatusLow
	}
}

// ValidateThresholds rejects negative values and a habitual boundary below medium
func ValidateThresholds(t domain.StatusThresholds) error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidThresholds, err)
	}
	for _, c := range []struct {
		name string
		t    domain.TierThresholds
	}{
		{string(domain.CategorySocial), t.Social},
		{string(domain.CategoryGameplay), t.Gameplay},
	} {
		if c.t.Habitual < c.t.Medium {
			return fmt.Errorf("%w: "+ErrMsgThresholdsOrder, domain.ErrInvalidThresholds, c.name, c.t.Habitual, c.t.Medium)
		}
	}
	return nil
}

// EffectiveThresholds applies the tie-break for misordered thresholds:
// a habitual boundary below medium is raised to medium, with a warning.
func EffectiveThresholds(t domain.StatusThresholds) (domain.StatusThresholds, []string, []domain.Defect) {
	var warnings []string
	var defects []domain.Defect

	fix := func(category domain.Category, tt domain.TierThresholds) domain.TierThresholds {
		if tt.Habitual >= tt.Medium {
			return tt
		}
		msg := fmt.Sprintf(WarnMsgThresholdOrder, category, tt.Habitual, tt.Medium, tt.Medium)
		warnings = append(warnings, msg)
		defects = append(defects, domain.Defect{
			Kind:   domain.DefectThresholdOrder,
			Field:  FieldThresholds,
			Detail: msg,
		})
		tt.Habitual = tt.Medium
		return tt
	}

	return domain.StatusThresholds{
		Social:   fix(domain.CategorySocial, t.Social),
		Gameplay: fix(domain.CategoryGameplay, t.Gameplay),
	}, warnings, defects
}

// OffenseTierFor maps a player's current status to the repeat-offense tier of a new punishment
func OffenseTierFor(status domain.StatusTier) domain.OffenseTier {
	switch status {
	case domain.StatusHabitual:
		return domain.OffenseHabitual
	case domain.StatusMedium:
		return domain.OffenseMedium
	default:
		return domain.OffenseFirst
	}
}

// StatusFor returns the tier of one category from an aggregate
func StatusFor(agg domain.StatusAggregate, category domain.Category) (domain.StatusTier, int) {
	if category == domain.CategoryGameplay {
		return agg.GameplayStatus, agg.GameplayPoints
	}
	return agg.SocialStatus, agg.SocialPoints
}
