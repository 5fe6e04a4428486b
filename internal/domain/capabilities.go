package domain

// Capabilities describes what an issuance of a punishment type requires and allows.
// Issuance and modification rules branch on these flags, never on type names.
type Capabilities struct {
	NeedsReason    bool `json:"needs_reason"`
	NeedsDuration  bool `json:"needs_duration"` // staff supplies the duration explicitly
	NeedsSeverity  bool `json:"needs_severity"`
	SingleSeverity bool `json:"single_severity"`
	Expires        bool `json:"expires"`   // false for permanent-only types
	Immediate      bool `json:"immediate"` // one-shot actions such as a kick
	AllowsAltBlock bool `json:"allows_alt_block"`
	AllowsStatWipe bool `json:"allows_stat_wipe"`
	Appealable     bool `json:"appealable"`
}

// Capabilities returns the descriptor for the type
func (t PunishmentType) Capabilities() Capabilities {
	if caps, ok := builtinCapabilities[t.Ordinal]; ok && t.IsBuiltin() {
		caps.AllowsAltBlock = caps.AllowsAltBlock || t.CanAltBlock
		caps.AllowsStatWipe = caps.AllowsStatWipe || t.CanStatWipe
		return caps
	}
	return Capabilities{
		NeedsReason:    true,
		NeedsSeverity:  !t.SingleSeverity,
		SingleSeverity: t.SingleSeverity,
		Expires:        true,
		AllowsAltBlock: t.CanAltBlock,
		AllowsStatWipe: t.CanStatWipe,
		Appealable:     t.IsAppealable,
	}
}
