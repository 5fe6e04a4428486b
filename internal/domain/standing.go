package domain

// StatusTier is a player's aggregated standing in one category
type StatusTier string

const (
	StatusLow      StatusTier = "Low"
	StatusMedium   StatusTier = "Medium"
	StatusHabitual StatusTier = "Habitual"
)

// Rank orders tiers for escalation comparisons
func (t StatusTier) Rank() int {
	switch t {
	case StatusMedium:
		return 1
	case StatusHabitual:
		return 2
	}
	return 0
}

// TierThresholds are the point boundaries for one category
type TierThresholds struct {
	Medium   int `json:"medium" validate:"gte=0"`
	Habitual int `json:"habitual" validate:"gte=0"`
}

// StatusThresholds are the admin-configured boundaries for both categories
type StatusThresholds struct {
	Social   TierThresholds `json:"social"`
	Gameplay TierThresholds `json:"gameplay"`
}

// DefaultThresholds returns 4/8 for both categories
func DefaultThresholds() StatusThresholds {
	t := TierThresholds{Medium: DefaultMediumThreshold, Habitual: DefaultHabitualThreshold}
	return StatusThresholds{Social: t, Gameplay: t}
}

// StatusAggregate is a player's standing across the social and gameplay categories.
// Pending is set when the catalog was unavailable; the tiers are then placeholders.
type StatusAggregate struct {
	SocialStatus        StatusTier `json:"social_status"`
	GameplayStatus      StatusTier `json:"gameplay_status"`
	SocialPoints        int        `json:"social_points"`
	GameplayPoints      int        `json:"gameplay_points"`
	Pending             bool       `json:"pending"`
	ActiveCount         int        `json:"active_count"`
	SkippedUnknownTypes int        `json:"skipped_unknown_types"`
	Warnings            []string   `json:"warnings,omitempty"`
	Defects             []Defect   `json:"defects,omitempty"`
}
