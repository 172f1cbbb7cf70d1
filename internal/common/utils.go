package common

import "strings"

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// IsBrowser reports whether a User-Agent header looks like an interactive
// browser rather than a CLI client.
func IsBrowser(userAgent string) bool {
	return HasAny(strings.ToLower(userAgent), "mozilla", "chrome", "safari", "firefox", "edge")
}
