package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lower-cases s and drops separators and package
// qualifiers, so "fleet.Star_Ship" and "starship" compare equal.
func NormalizeIdent(s string) string {
	if i := strings.LastIndexAny(s, "./"); i >= 0 {
		s = s[i+1:]
	}

	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}
