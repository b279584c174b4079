// Package logutil holds helpers for keeping log lines bounded.
package logutil

import "unicode/utf8"

// TruncateForLog shortens s to at most maxLen bytes, appending "..." when cut.
// Upstream response bodies go through it before being logged.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
