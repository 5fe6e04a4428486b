package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

var severityAliases = map[string]Severity{
	"low":        SeverityLow,
	"lenient":    SeverityLow,
	"regular":    SeverityRegular,
	"medium":     SeverityRegular,
	"severe":     SeveritySevere,
	"aggravated": SeveritySevere,
	"high":       SeveritySevere,
}

// NormalizeSeverity maps a stored or submitted severity label to its bucket.
// Matching is case-insensitive and accepts display names and legacy aliases.
func NormalizeSeverity(raw string) (Severity, bool) {
	key := cases.Fold().String(strings.TrimSpace(raw))
	s, ok := severityAliases[key]
	return s, ok
}
