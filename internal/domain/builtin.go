package domain

// Reserved administrative ordinals. These types are immutable.
const (
	OrdinalKick        = 0
	OrdinalManualMute  = 1
	OrdinalManualBan   = 2
	OrdinalSecurityBan = 3
	OrdinalLinkedBan   = 4
	OrdinalBlacklist   = 5

	MaxReservedOrdinal = OrdinalBlacklist
)

// UnknownTypeLabel is shown for instances whose ordinal is not in the catalog
const UnknownTypeLabel = "Unknown Punishment Type"

// IsReservedOrdinal reports whether an ordinal belongs to a built-in type
func IsReservedOrdinal(ordinal int) bool {
	return ordinal >= 0 && ordinal <= MaxReservedOrdinal
}

var builtinCapabilities = map[int]Capabilities{
	OrdinalKick:        {NeedsReason: true, Immediate: true, SingleSeverity: true},
	OrdinalManualMute:  {NeedsReason: true, NeedsDuration: true, SingleSeverity: true, Expires: true, Appealable: true},
	OrdinalManualBan:   {NeedsReason: true, NeedsDuration: true, SingleSeverity: true, Expires: true, Appealable: true, AllowsAltBlock: true, AllowsStatWipe: true},
	OrdinalSecurityBan: {NeedsReason: true, SingleSeverity: true, Appealable: true, AllowsAltBlock: true},
	OrdinalLinkedBan:   {NeedsReason: true, SingleSeverity: true, Appealable: true},
	OrdinalBlacklist:   {NeedsReason: true, SingleSeverity: true, AllowsAltBlock: true, AllowsStatWipe: true},
}

// BuiltinPunishmentTypes returns fresh copies of the reserved administrative types
func BuiltinPunishmentTypes() []PunishmentType {
	return []PunishmentType{
		{
			Ordinal:          OrdinalKick,
			Name:             "Kick",
			Description:      "Disconnects the player from the server.",
			StaffDescription: "One-shot action. Never counts toward standing.",
			Category:         CategoryAdministrative,
			SingleSeverity:   true,
		},
		{
			Ordinal:        OrdinalManualMute,
			Name:           "Manual Mute",
			Description:    "Chat mute with a staff-chosen duration.",
			Category:       CategoryAdministrative,
			SingleSeverity: true,
			IsAppealable:   true,
		},
		{
			Ordinal:        OrdinalManualBan,
			Name:           "Manual Ban",
			Description:    "Server ban with a staff-chosen duration.",
			Category:       CategoryAdministrative,
			SingleSeverity: true,
			CanAltBlock:    true,
			CanStatWipe:    true,
			IsAppealable:   true,
		},
		{
			Ordinal:        OrdinalSecurityBan,
			Name:           "Security Ban",
			Description:    "Permanent ban for compromised or malicious accounts.",
			Category:       CategoryAdministrative,
			SingleSeverity: true,
			CanAltBlock:    true,
			IsAppealable:   true,
		},
		{
			Ordinal:        OrdinalLinkedBan,
			Name:           "Linked Ban",
			Description:    "Permanent ban applied to an account linked to a banned player.",
			Category:       CategoryAdministrative,
			SingleSeverity: true,
			IsAppealable:   true,
		},
		{
			Ordinal:        OrdinalBlacklist,
			Name:           "Blacklist",
			Description:    "Permanent, non-appealable removal from the network.",
			Category:       CategoryAdministrative,
			SingleSeverity: true,
			CanAltBlock:    true,
			CanStatWipe:    true,
		},
	}
}
