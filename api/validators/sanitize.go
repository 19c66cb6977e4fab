package validators

import "strings"

// SanitizeString trims surrounding whitespace and truncates the result to
// maxLen bytes. A non-positive maxLen leaves the length unchecked.
func SanitizeString(raw string, maxLen int) string {
	cleaned := strings.TrimSpace(raw)
	if maxLen > 0 && len(cleaned) > maxLen {
		cleaned = cleaned[:maxLen]
	}
	return cleaned
}
