package domain

// PunishmentAppliedPayload is the payload for punishment.applied events
type PunishmentAppliedPayload struct {
	PunishmentID string `json:"punishment_id"`
	PlayerID     string `json:"player_id"`
	TypeOrdinal  int    `json:"type_ordinal"`
	Category     string `json:"category"`
	Severity     string `json:"severity,omitempty"`
	OffenseTier  string `json:"offense_tier"`
	IssuerName   string `json:"issuer_name"`
	DurationMs   int64  `json:"duration_ms"`
	Timestamp    int64  `json:"timestamp"`
}

// PunishmentStartedPayload is the payload for punishment.started events
type PunishmentStartedPayload struct {
	PunishmentID string `json:"punishment_id"`
	PlayerID     string `json:"player_id"`
	StartedAt    int64  `json:"started_at"`
	ExpiresAt    *int64 `json:"expires_at,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// PunishmentModifiedPayload is the payload for punishment.modified events
type PunishmentModifiedPayload struct {
	PunishmentID     string `json:"punishment_id"`
	PlayerID         string `json:"player_id"`
	ModificationID   string `json:"modification_id"`
	ModificationType string `json:"modification_type"`
	Origin           string `json:"origin"`
	IssuerName       string `json:"issuer_name"`
	Active           bool   `json:"active"`
	ExpiresAt        *int64 `json:"expires_at,omitempty"`
	Timestamp        int64  `json:"timestamp"`
}

// PunishmentNoteAddedPayload is the payload for punishment.note_added events
type PunishmentNoteAddedPayload struct {
	PunishmentID string `json:"punishment_id"`
	PlayerID     string `json:"player_id"`
	NoteID       string `json:"note_id"`
	IssuerName   string `json:"issuer_name"`
	Timestamp    int64  `json:"timestamp"`
}

// PunishmentExpiredPayload is the payload for punishment.expired events
type PunishmentExpiredPayload struct {
	PunishmentID string `json:"punishment_id"`
	PlayerID     string `json:"player_id"`
	ExpiredAt    int64  `json:"expired_at"`
	Timestamp    int64  `json:"timestamp"`
}

// StandingChangedPayload is the payload for standing.changed events
type StandingChangedPayload struct {
	PlayerID       string `json:"player_id"`
	Category       string `json:"category"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
	Points         int    `json:"points"`
	Escalated      bool   `json:"escalated"`
	Timestamp      int64  `json:"timestamp"`
}
