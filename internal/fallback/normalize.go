package fallback

import "strings"

// normalize produces the lowercased, trimmed copy used for all keyword and
// pattern matching. The original string is kept around separately so note
// extraction preserves the user's casing.
func normalize(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}
