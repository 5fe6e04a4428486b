package domain

// Event type constants used for event bus subscriptions, transport subjects
// and metrics labels.
//
// Event types follow the pattern: <entity>.<action> (e.g., "punishment.applied")
const (
	// EventTypePunishmentApplied is published when staff issues a punishment
	EventTypePunishmentApplied = "punishment.applied"

	// EventTypePunishmentStarted is published when the target system executes a punishment
	EventTypePunishmentStarted = "punishment.started"

	// EventTypePunishmentModified is published when a modification is appended
	EventTypePunishmentModified = "punishment.modified"

	// EventTypePunishmentNoteAdded is published when a staff note is appended
	EventTypePunishmentNoteAdded = "punishment.note_added"

	// EventTypePunishmentExpired is published when a punishment's effective expiry passes
	EventTypePunishmentExpired = "punishment.expired"

	// EventTypeStandingChanged is published when a player's status tier changes in either category
	EventTypeStandingChanged = "standing.changed"
)
