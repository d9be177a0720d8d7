package logs

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"phangs2caom2/internal/logging"
)

// Entry is one decoded log line.
type Entry struct {
	Time          time.Time
	Level         string
	Message       string
	Component     string
	RunID         string
	ObservationID string
	EventType     string
	Fields        map[string]any
	// Raw holds the undecoded line when it was not JSON.
	Raw string
}

// ParseEntry decodes a JSON log line. Lines that are not JSON objects come
// back with only Raw set.
func ParseEntry(line string) Entry {
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return Entry{Raw: line}
	}
	e := Entry{Fields: fields}
	e.Level = take(fields, "level")
	e.Message = take(fields, "msg")
	e.Component = take(fields, logging.FieldComponent)
	e.RunID = take(fields, logging.FieldRunID)
	e.ObservationID = take(fields, logging.FieldObservationID)
	e.EventType = take(fields, logging.FieldEventType)
	if ts := take(fields, "ts"); ts != "" {
		e.Time, _ = time.Parse(time.RFC3339, ts)
	}
	return e
}

func take(fields map[string]any, key string) string {
	value, ok := fields[key]
	if !ok {
		return ""
	}
	delete(fields, key)
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Format renders the entry on one line, remaining fields sorted by key.
func (e Entry) Format() string {
	if e.Raw != "" {
		return e.Raw
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(strings.ToUpper(e.Level))
	b.WriteByte(' ')
	if e.Component != "" {
		b.WriteString(e.Component)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.RunID != "" {
		fmt.Fprintf(&b, " %s=%s", logging.FieldRunID, e.RunID)
	}
	if e.ObservationID != "" {
		fmt.Fprintf(&b, " %s=%s", logging.FieldObservationID, e.ObservationID)
	}
	for _, key := range slices.Sorted(maps.Keys(e.Fields)) {
		value := fmt.Sprint(e.Fields[key])
		if strings.ContainsAny(value, " \t") {
			value = fmt.Sprintf("%q", value)
		}
		fmt.Fprintf(&b, " %s=%s", key, value)
	}
	return b.String()
}

// Filter selects entries. Empty fields match everything.
type Filter struct {
	// RunID matches by prefix so short run IDs work.
	RunID         string
	ObservationID string
	// MinLevel is one of debug, info, warn, error.
	MinLevel string
}

var levelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

// Match reports whether e passes the filter. Raw lines only pass an empty
// filter.
func (f Filter) Match(e Entry) bool {
	if e.Raw != "" {
		return f == Filter{}
	}
	if f.RunID != "" && !strings.HasPrefix(e.RunID, f.RunID) {
		return false
	}
	if f.ObservationID != "" && e.ObservationID != f.ObservationID {
		return false
	}
	if f.MinLevel != "" && levelRank[strings.ToLower(e.Level)] < levelRank[strings.ToLower(f.MinLevel)] {
		return false
	}
	return true
}
