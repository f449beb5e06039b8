package services

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// slugify lowercases the name and collapses runs of non-alphanumeric
// characters into single hyphens. Slugs are assigned at creation and never
// reassigned.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		s = shortID()
	}
	return s
}

// shortID returns a short random suffix used to disambiguate slug collisions.
func shortID() string {
	return uuid.NewString()[:8]
}
