// FILE: ssetail/src/internal/sse/event.go

// Package sse frames a raw Server-Sent Events byte stream into events.
//
// Only the "event" and "data" fields are recognized; every other field,
// comment line and non-field line is ignored.
package sse

// Event holds the fields recognized within one framing unit.
// A later field of the same name overwrites an earlier one.
type Event struct {
	// Type is the value of the last "event:" line
	Type string

	// Data is the value of the last "data:" line
	Data string

	HasType bool
	HasData bool
}

// Empty reports whether no recognized field was seen
func (e Event) Empty() bool {
	return !e.HasType && !e.HasData
}

func (e *Event) set(field, value string) {
	switch field {
	case "event":
		e.Type = value
		e.HasType = true
	case "data":
		e.Data = value
		e.HasData = true
	default:
		// Unknown fields (id, retry, ...) are ignored
	}
}
