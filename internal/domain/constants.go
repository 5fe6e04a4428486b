package domain

// Default status thresholds applied until an admin saves custom values
const (
	DefaultMediumThreshold   = 4
	DefaultHabitualThreshold = 8
)

// Boundary limits
const (
	MaxReasonLength = 1000
	MaxNoteLength   = 4000
	MaxOrdinal      = 10000
)
