package helper

import "strings"

// MaskSecret returns the last four characters prefixed by asterisks, or "" for an empty secret.
func MaskSecret(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return "****" + s[len(s)-4:]
}

// MergeSecret keeps the stored value unless a non-empty replacement was supplied.
func MergeSecret(stored string, incoming *string) string {
	if incoming == nil || strings.TrimSpace(*incoming) == "" {
		return stored
	}
	return strings.TrimSpace(*incoming)
}
