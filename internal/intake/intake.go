// Package intake validates, sanitizes, and rate-limits inbound form
// submissions (contact and newsletter). Nothing here sends mail; accepted
// submissions are logged and acknowledged.
package intake

import (
	"regexp"
	"strings"
)

// emailPattern accepts the usual local@domain.tld shape. Intentionally
// simple; the goal is catching typos, not full RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// tagLike matches <...> substrings in free text.
var tagLike = regexp.MustCompile(`<[^>]*>`)

// ValidEmail reports whether the address matches local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Sanitize strips tag-like substrings from free text, then trims
// surrounding whitespace. Defense against trivial markup injection in
// logged or stored submissions.
func Sanitize(s string) string {
	return strings.TrimSpace(tagLike.ReplaceAllString(s, ""))
}

// ClientIP derives the rate-limit key from a forwarded-for header value:
// the first hop, or the literal "unknown" when the header is absent. All
// unproxied clients therefore share one bucket; that is the documented
// behavior, kept deliberately.
func ClientIP(forwardedFor string) string {
	if forwardedFor == "" {
		return "unknown"
	}
	first := forwardedFor
	if i := strings.Index(forwardedFor, ","); i >= 0 {
		first = forwardedFor[:i]
	}
	first = strings.TrimSpace(first)
	if first == "" {
		return "unknown"
	}
	return first
}
