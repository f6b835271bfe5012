// Package naming maps arbitrary user identifiers to filesystem-safe
// storage namespaces.
package naming

import "strings"

// Normalize derives a filesystem-safe namespace segment from a user-supplied
// identifier (typically an email address). Every rune outside [A-Za-z0-9_-]
// is replaced with '_'. The mapping is deterministic and total; identifiers
// that normalize identically share one namespace, which is accepted.
func Normalize(identifier string) string {
	var b strings.Builder
	b.Grow(len(identifier))

	for _, r := range identifier {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
