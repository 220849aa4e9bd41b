package playlist

import (
	"strings"
	"unicode"
)

// sanitizeAllowedPunctuation lists the non-alphanumeric characters kept by SanitizeName.
const sanitizeAllowedPunctuation = "-_.() "

// SanitizeName turns a display name into a portable file name: only letters, digits,
// the characters -_.() and space survive, the result is trimmed and spaces become
// underscores. A name with nothing left is rejected with ErrInvalidName.
func SanitizeName(name string) (string, error) {
	var builder strings.Builder

	builder.Grow(len(name))

	for _, r := range name {
		if isSanitizeAllowed(r) {
			builder.WriteRune(r)
		}
	}

	result := strings.ReplaceAll(strings.TrimSpace(builder.String()), " ", "_")
	if result == "" {
		return "", ErrInvalidName
	}

	return result, nil
}

func isSanitizeAllowed(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(sanitizeAllowedPunctuation, r)
}
