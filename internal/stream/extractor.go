package stream

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
)

// EmbeddedEvent is one user-defined event a debugger-side Python script
// pushed into the console stream via a "<gdbjs:event:...>" frame.
type EmbeddedEvent struct {
	Name string
	Data any
}

const (
	eventOpenPrefix = "<gdbjs:event:"
	eventCloseTail  = ":event:gdbjs>"
)

// ExtractEvents scans s for every "<gdbjs:event:name payload
// name:event:gdbjs>" frame and decodes the JSON payload. Malformed frames
// (unterminated, or a payload that doesn't parse as JSON) are logged and
// skipped, never fatal to the scan.
func ExtractEvents(s string, logger *slog.Logger) []EmbeddedEvent {
	if logger == nil {
		logger = slog.Default()
	}
	var out []EmbeddedEvent
	for {
		i := strings.Index(s, eventOpenPrefix)
		if i < 0 {
			return out
		}
		rest := s[i+len(eventOpenPrefix):]
		sp := strings.IndexByte(rest, ' ')
		if sp < 0 {
			return out
		}
		name := rest[:sp]
		closeTag := name + eventCloseTail
		j := strings.Index(rest[sp+1:], closeTag)
		if j < 0 {
			logger.Warn("stream: unterminated embedded event frame", "name", name)
			return out
		}
		payload := rest[sp+1 : sp+1+j]
		var data any
		if err := json.Unmarshal([]byte(payload), &data); err != nil {
			logger.Warn("stream: malformed embedded event payload", "name", name, "error", err)
		} else {
			out = append(out, EmbeddedEvent{Name: name, Data: data})
		}
		s = rest[sp+1+j+len(closeTag):]
	}
}

var framePattern = regexp.MustCompile(`(?s)<gdbjs:.*?:gdbjs>`)

// StripFrames removes every "<gdbjs:...:gdbjs>" frame from s — the event
// frames ExtractEvents consumes and any other frame of that shape — so the
// user-visible console stream never carries wrapper plumbing.
func StripFrames(s string) string {
	return framePattern.ReplaceAllString(s, "")
}
