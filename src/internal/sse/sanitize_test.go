// FILE: ssetail/src/internal/sse/sanitize_test.go
package sse

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "ColorCodes", input: "Hello \x1b[31mWorld\x1b[0m", expected: "Hello World"},
		{name: "TrailingWhitespace", input: "I (42) wifi: connected \t\r\n", expected: "I (42) wifi: connected"},
		{name: "LeadingWhitespaceKept", input: "   indented", expected: "   indented"},
		{name: "InteriorKept", input: "a  \t b", expected: "a  \t b"},
		{name: "CursorMovement", input: "\x1b[2K\x1b[1Gprogress 50%", expected: "progress 50%"},
		{name: "EraseLine", input: "\x1b[Kline", expected: "line"},
		{name: "C1Introducer", input: "\u009b1mbold\u009b0m", expected: "bold"},
		{name: "ESPLogColor", input: "\x1b[0;32mI (1234) app: ready\x1b[0m\n", expected: "I (1234) app: ready"},
		{name: "SplicedSequence", input: "\x1b\x1b[m[m", expected: ""},
		{name: "WhitespaceOnly", input: " \t\n", expected: ""},
		{name: "Empty", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Sanitize(tc.input))
		})
	}
}

func TestStripEscapes_KeepsPlainText(t *testing.T) {
	for _, s := range []string{"plain", "a [31m b", "x\x1b", "tab\there", "ünïcödé"} {
		assert.Equal(t, s, StripEscapes(s))
		assert.Equal(t, strings.TrimRightFunc(s, unicode.IsSpace), Sanitize(s))
	}
}

func FuzzStripEscapes(f *testing.F) {
	for _, seed := range []string{
		"Hello \x1b[31mWorld\x1b[0m",
		"\x1b\x1b[m[m",
		"\x1b[\x1b[0m1m",
		"\u009b\u009b0m0m",
		"no escapes at all   ",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		once := StripEscapes(s)
		assert.Equal(t, once, StripEscapes(once), "stripping must be idempotent")

		sanitized := Sanitize(s)
		assert.Equal(t, sanitized, Sanitize(sanitized))
		assert.Equal(t, strings.TrimRightFunc(sanitized, unicode.IsSpace), sanitized)
	})
}
