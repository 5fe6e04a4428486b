package punishment

import (
	"fmt"
	"slices"
	"time"

	"github.com/osse101/modstanding/internal/domain"
)

// epoch is the sort key for modifications whose timestamp is missing
var epoch = time.Unix(0, 0).UTC()

// Reduce folds a punishment's modifications over its original values.
//
// The fold is pure: p is not mutated, and the result depends only on p and now.
// A PARDON clears Active but does not stop the fold, so a later DURATION_CHANGE
// still updates Expiry and Duration. Use IsCurrentlyActive for the active/inactive
// decision, which treats any pardon as final.
func Reduce(p domain.PunishmentInstance, now time.Time) domain.EffectiveState {
	state := domain.EffectiveState{
		Active:           p.OriginalActive,
		Expiry:           cloneTime(p.OriginalExpiry),
		Duration:         p.OriginalDuration,
		HasModifications: len(p.Modifications) > 0,
	}

	ordered := SortModifications(p.Modifications)

	for _, m := range ordered {
		if m.IssuedAt.IsZero() {
			state.Defects = append(state.Defects, domain.Defect{
				Kind:     domain.DefectMissingIssuedAt,
				RecordID: m.ID,
				Field:    FieldIssuedAt,
				Detail:   fmt.Sprintf(DefectMsgMissingIssuedAt, m.Type, p.ID),
			})
		}

		switch m.Type {
		case domain.ModPardon:
			state.Active = false

		case domain.ModDurationChange:
			if m.EffectiveDuration == nil {
				state.Defects = append(state.Defects, domain.Defect{
					Kind:     domain.DefectInvalidModification,
					RecordID: m.ID,
					Field:    FieldEffectiveDuration,
					Detail:   DefectMsgMissingDuration,
				})
				continue
			}

			if *m.EffectiveDuration == 0 {
				state.Duration = 0
				state.Expiry = nil
				state.Active = true
				continue
			}

			base := m.IssuedAt
			if base.IsZero() {
				base = now
			}
			expiry := domain.ExpiryAfter(base, *m.EffectiveDuration)
			state.Duration = *m.EffectiveDuration
			state.Expiry = &expiry
			state.Active = expiry.After(now)
		}
	}

	state.OrderedModifications = ordered
	return state
}

// SortModifications returns a copy of mods stably sorted by issue time.
// Missing timestamps sort as the Unix epoch.
func SortModifications(mods []domain.Modification) []domain.Modification {
	ordered := make([]domain.Modification, len(mods))
	copy(ordered, mods)
	slices.SortStableFunc(ordered, func(a, b domain.Modification) int {
		return sortKey(a).Compare(sortKey(b))
	})
	return ordered
}

func sortKey(m domain.Modification) time.Time {
	if m.IssuedAt.IsZero() {
		return epoch
	}
	return m.IssuedAt
}

// HasPardon reports whether any modification is a pardon
func HasPardon(mods []domain.Modification) bool {
	for _, m := range mods {
		if m.Type == domain.ModPardon {
			return true
		}
	}
	return false
}

// IsCurrentlyActive reports whether a punishment is in force at now.
// A punishment awaiting execution is never active, and a pardon anywhere
// in its history makes it inactive regardless of expiry.
func IsCurrentlyActive(p domain.PunishmentInstance, es domain.EffectiveState, now time.Time) bool {
	if p.IsAwaitingExecution() {
		return false
	}
	if HasPardon(es.OrderedModifications) {
		return false
	}
	return es.Expiry == nil || es.Expiry.After(now)
}

// StateOf classifies a punishment for display
func StateOf(p domain.PunishmentInstance, es domain.EffectiveState, now time.Time) domain.PunishmentState {
	switch {
	case p.IsAwaitingExecution():
		return domain.StateAwaiting
	case HasPardon(es.OrderedModifications):
		return domain.StatePardoned
	case IsCurrentlyActive(p, es, now):
		return domain.StateActive
	case es.Duration > 0:
		return domain.StateExpired
	default:
		return domain.StateInactive
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
