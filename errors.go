package gdbjs

import (
	"errors"
	"fmt"

	"github.com/taskcluster/gdb-js/internal/stream"
)

// GdbError is raised when MI answers a request with "^error".
type GdbError struct {
	Msg     string
	Code    int
	Command string
}

func (e *GdbError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("gdbjs: %q failed: %s (code %d)", e.Command, e.Msg, e.Code)
	}
	return fmt.Sprintf("gdbjs: %q failed: %s", e.Command, e.Msg)
}

// ProtocolError marks a debugger reply the wrapper could not make sense
// of. Impossible pairings in the stream layer (a result with no pending
// request, a CLI echo with no pending CLI request, a malformed
// embedded-event payload) are only logged where they occur; a facade call
// returns a ProtocolError when its own reply lacks an expected field or
// carries a malformed JSON payload (AddBreak, Context, SourceFiles).
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "gdbjs: protocol error: " + e.Reason }

// ProcessTerminatedError is returned by every pending and future public
// operation once the subprocess's output stream has closed.
type ProcessTerminatedError struct {
	Command string
}

func (e *ProcessTerminatedError) Error() string {
	return fmt.Sprintf("gdbjs: process terminated before %q completed", e.Command)
}

// UsageError marks invalid arguments rejected synchronously, without ever
// touching the subprocess (empty/oversized script, nil scope where one is
// required, and similar).
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string { return "gdbjs: " + e.Reason }

// translateOutcomeErr converts the internal stream-layer error types into
// their public equivalents, preserving unrelated errors (e.g. context
// cancellation) unchanged.
func translateOutcomeErr(err error) error {
	if err == nil {
		return nil
	}
	var gdbErr *stream.GdbError
	if errors.As(err, &gdbErr) {
		return &GdbError{Msg: gdbErr.Msg, Code: gdbErr.Code, Command: gdbErr.Command}
	}
	var termErr *stream.ProcessTerminatedError
	if errors.As(err, &termErr) {
		return &ProcessTerminatedError{Command: termErr.Command}
	}
	return err
}
