package content

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify derives a URL-safe slug from a title: lowercase, each whitespace
// run replaced by a single hyphen, everything outside [a-z0-9-] removed.
// Example: "Modern Patio Design" -> "modern-patio-design".
func Slugify(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	out = whitespaceRuns.ReplaceAllString(out, "-")
	return nonSlugChars.ReplaceAllString(out, "")
}
