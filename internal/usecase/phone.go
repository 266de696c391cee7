package usecase

import "strings"

// SanitizeContact rewrites a stored contact string into a dialable
// number: digits only, plus the leading + when the stored value has
// one. Returns "" when nothing dialable remains.
func SanitizeContact(contact string) string {
	trimmed := strings.TrimSpace(contact)

	var b strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "+") {
		return "+" + digits
	}
	return digits
}
