package utils

import "regexp"

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// ValidSlug reports whether s is a URL-safe slug: letters, digits and
// hyphens only, non-empty.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
