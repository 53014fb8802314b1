// Package validation holds the naming rules for saved configurations and
// the fixed tier set.
package validation

import (
	"strings"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config/models"
)

// NormalizeName turns arbitrary user text into a canonical configuration
// name: lowercase, spaces and underscores become dashes, everything outside
// [a-z0-9-] is dropped, dash runs collapse to one and leading/trailing
// dashes are trimmed. Total and idempotent; all-invalid input yields "".
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastDash := false
	for _, r := range strings.ToLower(name) {
		if r == ' ' || r == '_' {
			r = '-'
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == '-':
			if !lastDash {
				b.WriteByte('-')
			}
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}

// ValidTier reports whether tier is one of the three fixed model tiers.
func ValidTier(tier string) bool {
	switch tier {
	case models.TierHaiku, models.TierSonnet, models.TierOpus:
		return true
	}
	return false
}
