// FILE: ssetail/src/internal/sse/parser.go
package sse

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxLineBytes bounds one unterminated line held between reads in event framing
const MaxLineBytes = 64 * 1024

var (
	// ErrDecode is returned when stream bytes are not valid UTF-8
	ErrDecode = errors.New("stream is not valid utf-8")

	// ErrLineTooLong is returned when a line outgrows MaxLineBytes
	ErrLineTooLong = errors.New("stream line too long")
)

// Framing selects how field lines are grouped into events
type Framing string

const (
	// FramingEvent flushes one event per blank line, accumulating fields across reads
	FramingEvent Framing = "event"

	// FramingChunk resets fields on every read and yields one event per read
	FramingChunk Framing = "chunk"
)

// ParseFraming converts a configuration value, empty selects FramingEvent
func ParseFraming(s string) (Framing, error) {
	switch Framing(strings.ToLower(s)) {
	case "", FramingEvent:
		return FramingEvent, nil
	case FramingChunk:
		return FramingChunk, nil
	default:
		return "", fmt.Errorf("unknown framing: %s (valid: event, chunk)", s)
	}
}

// Parser turns raw reads into events. Not safe for concurrent use;
// one parser belongs to one connection cycle.
type Parser struct {
	framing Framing

	// Event framing state
	pending []byte // incomplete trailing line
	scanned int    // prefix of pending known to hold no terminator
	skipLF  bool   // previous read ended with '\r'
	current Event
}

// NewParser creates a parser for the given framing
func NewParser(framing Framing) *Parser {
	if framing == "" {
		framing = FramingEvent
	}
	return &Parser{framing: framing}
}

// Framing returns the parser framing mode
func (p *Parser) Framing() Framing {
	return p.framing
}

// Feed consumes one raw chunk and returns the events it completes.
// In chunk framing exactly one event is returned, possibly empty.
func (p *Parser) Feed(chunk []byte) ([]Event, error) {
	if p.framing == FramingChunk {
		ev, err := ParseChunk(chunk)
		if err != nil {
			return nil, err
		}
		return []Event{ev}, nil
	}
	return p.feedEvents(chunk)
}

// ParseChunk summarizes all recognized fields found in a single chunk
func ParseChunk(chunk []byte) (Event, error) {
	var ev Event
	if !utf8.Valid(chunk) {
		return ev, fmt.Errorf("%w: %d byte chunk", ErrDecode, len(chunk))
	}

	text := string(chunk)
	for len(text) > 0 {
		var line string
		line, text = nextLine(text)
		if field, value, ok := parseField(line); ok {
			ev.set(field, value)
		}
	}
	return ev, nil
}

func (p *Parser) feedEvents(chunk []byte) ([]Event, error) {
	if p.skipLF && len(chunk) > 0 {
		if chunk[0] == '\n' {
			chunk = chunk[1:]
		}
		p.skipLF = false
	}

	p.pending = append(p.pending, chunk...)

	var events []Event
	start := 0
	for {
		i := bytes.IndexAny(p.pending[p.scanned:], "\r\n")
		if i < 0 {
			p.scanned = len(p.pending)
			break
		}
		i += p.scanned

		line := p.pending[start:i]
		next := i + 1
		if p.pending[i] == '\r' {
			if next == len(p.pending) {
				// CRLF may be split across reads
				p.skipLF = true
			} else if p.pending[next] == '\n' {
				next++
			}
		}
		start, p.scanned = next, next

		if !utf8.Valid(line) {
			p.reset()
			return events, fmt.Errorf("%w: %q", ErrDecode, line)
		}

		if len(line) == 0 {
			if !p.current.Empty() {
				events = append(events, p.current)
			}
			p.current = Event{}
			continue
		}

		if field, value, ok := parseField(string(line)); ok {
			p.current.set(field, value)
		}
	}

	if start > 0 {
		n := copy(p.pending, p.pending[start:])
		p.pending = p.pending[:n]
		p.scanned -= start
	}

	if len(p.pending) > MaxLineBytes {
		size := len(p.pending)
		p.reset()
		return events, fmt.Errorf("%w: %d bytes without terminator", ErrLineTooLong, size)
	}
	return events, nil
}

// Flush returns the event still being framed when the stream ends without
// a closing blank line. An unterminated trailing line counts as the last
// field line. The parser is empty afterwards.
func (p *Parser) Flush() (Event, bool) {
	if len(p.pending) > 0 && utf8.Valid(p.pending) {
		if field, value, ok := parseField(string(p.pending)); ok {
			p.current.set(field, value)
		}
	}

	ev := p.current
	p.reset()
	return ev, !ev.Empty()
}

// Reset drops any partially framed event
func (p *Parser) Reset() {
	p.reset()
}

func (p *Parser) reset() {
	p.pending = nil
	p.scanned = 0
	p.skipLF = false
	p.current = Event{}
}

// nextLine splits off the first line of text, accepting \r\n, \n and \r terminators
func nextLine(text string) (line, rest string) {
	i := strings.IndexAny(text, "\r\n")
	if i < 0 {
		return text, ""
	}
	line, rest = text[:i], text[i+1:]
	if text[i] == '\r' && strings.HasPrefix(rest, "\n") {
		rest = rest[1:]
	}
	return line, rest
}

// parseField splits a "field: value" line on its first separator.
// Blank lines, comments and lines without a separator carry no field.
func parseField(line string) (field, value string, ok bool) {
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ":") {
		return "", "", false
	}

	field, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(field), strings.TrimSpace(value), true
}
