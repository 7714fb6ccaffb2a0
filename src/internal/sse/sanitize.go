// FILE: ssetail/src/internal/sse/sanitize.go
package sse

import (
	"regexp"
	"strings"
	"unicode"
)

// 7-bit (ESC + Fe) and 8-bit C1 introducers, parameter bytes, intermediate bytes, final byte
var escapeSequence = regexp.MustCompile(`(?:\x1b[@-_]|[\x{80}-\x{9f}])[0-?]*[ -/]*[@-~]`)

// StripEscapes removes terminal escape sequences until none remain.
// A single pass can splice a new sequence out of the pieces around a removed one.
func StripEscapes(s string) string {
	for {
		stripped := escapeSequence.ReplaceAllString(s, "")
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// Sanitize strips escape sequences, then trailing whitespace.
// Leading whitespace and interior content are kept verbatim.
func Sanitize(s string) string {
	return strings.TrimRightFunc(StripEscapes(s), unicode.IsSpace)
}
