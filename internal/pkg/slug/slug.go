package slug

import "strings"

// Make derives a URL slug from a display name: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens stripped. The result is stable under repeated application.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
