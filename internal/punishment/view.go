package punishment

import (
	"time"

	"github.com/osse101/modstanding/internal/domain"
)

// View is a punishment together with everything derived from it for display
type View struct {
	Punishment      domain.PunishmentInstance `json:"punishment"`
	TypeName        string                    `json:"type_name"`
	KnownType       bool                      `json:"known_type"`
	Category        domain.Category           `json:"category,omitempty"`
	Effective       domain.EffectiveState     `json:"effective"`
	State           domain.PunishmentState    `json:"state"`
	CurrentlyActive bool                      `json:"currently_active"`
	DurationLabel   string                    `json:"duration_label"`
	RemainingMs     *int64                    `json:"remaining_ms,omitempty"`
	AltBlocking     bool                      `json:"alt_blocking"`
	StatWiping      bool                      `json:"stat_wiping"`
	Actions         Actions                   `json:"actions"`
}

// Actions lists which staff actions are currently allowed on a punishment
type Actions struct {
	CanStart          bool `json:"can_start"`
	CanPardon         bool `json:"can_pardon"`
	CanChangeDuration bool `json:"can_change_duration"`
	CanToggleAltBlock bool `json:"can_toggle_alt_block"`
	CanToggleStatWipe bool `json:"can_toggle_stat_wipe"`
	CanAppeal         bool `json:"can_appeal"`
}

// BuildView reduces p and derives its display fields
func BuildView(p domain.PunishmentInstance, catalog domain.Catalog, now time.Time) View {
	es := Reduce(p, now)
	state := StateOf(p, es, now)

	view := View{
		Punishment:      p,
		TypeName:        TypeLabel(catalog, p.TypeOrdinal),
		Effective:       es,
		State:           state,
		CurrentlyActive: state == domain.StateActive,
		DurationLabel:   FormatDuration(es.Duration),
	}
	view.AltBlocking, view.StatWiping = CurrentFlags(p.Data, es.OrderedModifications)

	if left, ok := Remaining(es, now); ok {
		ms := left.Milliseconds()
		view.RemainingMs = &ms
	}

	t, known := catalog.Lookup(p.TypeOrdinal)
	view.KnownType = known
	if !known {
		// unknown types stay visible in history but offer no actions
		view.Actions.CanStart = state == domain.StateAwaiting
		return view
	}
	view.Category = t.Category

	caps := t.Capabilities()
	pardoned := state == domain.StatePardoned
	view.Actions = Actions{
		CanStart:          state == domain.StateAwaiting,
		CanPardon:         !pardoned,
		CanChangeDuration: !pardoned && !caps.Immediate,
		CanToggleAltBlock: !pardoned && caps.AllowsAltBlock,
		CanToggleStatWipe: !pardoned && caps.AllowsStatWipe,
		CanAppeal:         caps.Appealable && view.CurrentlyActive,
	}
	return view
}
