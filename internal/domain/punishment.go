package domain

import (
	"strings"
	"time"
)

// ModificationType is the canonical kind of a modification event
type ModificationType string

const (
	ModDurationChange ModificationType = "DURATION_CHANGE"
	ModPardon         ModificationType = "PARDON"
	ModAltBlockOn     ModificationType = "ALT_BLOCK_ON"
	ModAltBlockOff    ModificationType = "ALT_BLOCK_OFF"
	ModStatWipeOn     ModificationType = "STAT_WIPE_ON"
	ModStatWipeOff    ModificationType = "STAT_WIPE_OFF"
)

// IsFlagToggle reports whether the modification only toggles an optional effect
func (t ModificationType) IsFlagToggle() bool {
	switch t {
	case ModAltBlockOn, ModAltBlockOff, ModStatWipeOn, ModStatWipeOff:
		return true
	}
	return false
}

// ModificationOrigin records where a modification came from
type ModificationOrigin string

const (
	OriginManual ModificationOrigin = "manual"
	OriginAppeal ModificationOrigin = "appeal"
	OriginSystem ModificationOrigin = "system"
)

type modificationAlias struct {
	Type   ModificationType
	Origin ModificationOrigin
}

var modificationAliases = map[string]modificationAlias{
	"DURATION_CHANGE":        {ModDurationChange, OriginManual},
	"MANUAL_DURATION_CHANGE": {ModDurationChange, OriginManual},
	"APPEAL_DURATION_CHANGE": {ModDurationChange, OriginAppeal},
	"PARDON":                 {ModPardon, OriginManual},
	"MANUAL_PARDON":          {ModPardon, OriginManual},
	"APPEAL_ACCEPT":          {ModPardon, OriginAppeal},
	"ALT_BLOCK_ON":           {ModAltBlockOn, OriginManual},
	"SET_ALT_BLOCKING_TRUE":  {ModAltBlockOn, OriginManual},
	"ALT_BLOCK_OFF":          {ModAltBlockOff, OriginManual},
	"SET_ALT_BLOCKING_FALSE": {ModAltBlockOff, OriginManual},
	"STAT_WIPE_ON":           {ModStatWipeOn, OriginManual},
	"SET_WIPING_TRUE":        {ModStatWipeOn, OriginManual},
	"STAT_WIPE_OFF":          {ModStatWipeOff, OriginManual},
	"SET_WIPING_FALSE":       {ModStatWipeOff, OriginManual},
}

// ResolveModificationType maps a wire name (canonical or alias) to its canonical type and origin
func ResolveModificationType(raw string) (ModificationType, ModificationOrigin, bool) {
	alias, ok := modificationAliases[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return "", "", false
	}
	return alias.Type, alias.Origin, true
}

// Modification is an immutable event altering a punishment's effective state.
// A zero IssuedAt means the timestamp was missing or unparsable.
type Modification struct {
	ID                string             `json:"id"`
	Type              ModificationType   `json:"type"`
	Origin            ModificationOrigin `json:"origin,omitempty"`
	IssuedAt          time.Time          `json:"issued_at"`
	EffectiveDuration *int64             `json:"effective_duration,omitempty"` // ms, 0 = permanent
	Reason            string             `json:"reason,omitempty"`
	IssuerName        string             `json:"issuer_name,omitempty"`
}

// Note is free-form staff commentary attached to a punishment
type Note struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	IssuerName string    `json:"issuer_name"`
	IssuedAt   time.Time `json:"issued_at"`
}

// PunishmentData holds the optional effect flags
type PunishmentData struct {
	AltBlocking *bool `json:"alt_blocking,omitempty"`
	StatWiping  *bool `json:"stat_wiping,omitempty"`
}

// PunishmentInstance is one issued punishment against a player.
// Original fields are never rewritten; changes are appended as Modifications.
type PunishmentInstance struct {
	ID          string      `json:"id"`
	PlayerID    string      `json:"player_id"`
	TypeOrdinal int         `json:"type_ordinal"`
	Severity    *Severity   `json:"severity,omitempty"`
	OffenseTier OffenseTier `json:"offense_tier"`
	IssuerName  string      `json:"issuer_name"`
	Reason      string      `json:"reason"`

	IssuedAt         time.Time  `json:"issued_at"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	OriginalExpiry   *time.Time `json:"original_expiry,omitempty"`
	OriginalDuration int64      `json:"original_duration"` // ms, 0 = permanent
	OriginalActive   bool       `json:"original_active"`

	Modifications     []Modification `json:"modifications"`
	Notes             []Note         `json:"notes,omitempty"`
	EvidenceRefs      []string       `json:"evidence_refs,omitempty"`
	AttachedTicketIDs []string       `json:"attached_ticket_ids,omitempty"`
	Data              PunishmentData `json:"data"`
}

// IsAwaitingExecution reports whether the target system has not applied the punishment yet
func (p PunishmentInstance) IsAwaitingExecution() bool {
	return p.StartedAt == nil
}
