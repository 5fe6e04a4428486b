package punishment

import (
	"fmt"
	"strings"
	"time"

	"github.com/osse101/modstanding/internal/domain"
)

// FormatDuration renders a millisecond duration as "1d 2h 30m". Zero is permanent.
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return LabelPermanent
	}

	// counted in milliseconds so durations past the time.Duration range still render
	units := []struct {
		size   int64
		suffix string
	}{
		{int64(24 * time.Hour / time.Millisecond), "d"},
		{int64(time.Hour / time.Millisecond), "h"},
		{int64(time.Minute / time.Millisecond), "m"},
		{int64(time.Second / time.Millisecond), "s"},
	}

	rest := ms
	var parts []string
	for _, u := range units {
		if n := rest / u.size; n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, u.suffix))
			rest -= n * u.size
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%dms", ms)
	}
	return strings.Join(parts, " ")
}

// Remaining returns the time left before expiry. ok is false for permanent punishments.
func Remaining(es domain.EffectiveState, now time.Time) (time.Duration, bool) {
	if es.Expiry == nil {
		return 0, false
	}
	left := es.Expiry.Sub(now)
	if left < 0 {
		left = 0
	}
	return left, true
}

// TypeLabel returns the type name for an ordinal, or the unknown-type label
func TypeLabel(catalog domain.Catalog, ordinal int) string {
	if t, ok := catalog.Lookup(ordinal); ok {
		return t.Name
	}
	return domain.UnknownTypeLabel
}

// CurrentFlags replays flag toggles over the original data flags
func CurrentFlags(data domain.PunishmentData, ordered []domain.Modification) (altBlocking, statWiping bool) {
	if data.AltBlocking != nil {
		altBlocking = *data.AltBlocking
	}
	if data.StatWiping != nil {
		statWiping = *data.StatWiping
	}
	for _, m := range ordered {
		switch m.Type {
		case domain.ModAltBlockOn:
			altBlocking = true
		case domain.ModAltBlockOff:
			altBlocking = false
		case domain.ModStatWipeOn:
			statWiping = true
		case domain.ModStatWipeOff:
			statWiping = false
		}
	}
	return altBlocking, statWiping
}
