package gdbjs

import (
	"context"
	"fmt"

	"github.com/taskcluster/gdb-js/internal/dispatch"
	"github.com/taskcluster/gdb-js/internal/mi"
)

// ExecPy runs an arbitrary Python snippet inside the running GDB, via
// "-interpreter-exec console \"python\n<escaped src>\"".
func (c *Client) ExecPy(ctx context.Context, src string, scope Scope) error {
	if src == "" {
		return &UsageError{Reason: "execpy: empty script"}
	}
	if len(src) > dispatch.MaxScriptLength {
		return &UsageError{Reason: "execpy: script exceeds the length ceiling"}
	}
	cmd := fmt.Sprintf("-interpreter-exec console \"python\\n%s\"", dispatch.EscapeScript(src))
	err := c.withScope(ctx, scope, func(ctx context.Context) error {
		_, sendErr := c.dispatcher.SendMI(ctx, cmd, scope.toInternal())
		return sendErr
	})
	return translateOutcomeErr(err)
}

// ExecCLI runs an arbitrary CLI command and returns its console reply body.
func (c *Client) ExecCLI(ctx context.Context, cmd string, scope Scope) (string, error) {
	var body string
	err := c.withScope(ctx, scope, func(ctx context.Context) error {
		out, sendErr := c.dispatcher.SendCLI(ctx, cmd, scope.toInternal())
		if sendErr != nil {
			return sendErr
		}
		body = out.CLIBody
		return nil
	})
	if err != nil {
		return "", translateOutcomeErr(err)
	}
	return body, nil
}

// ExecMI runs an arbitrary raw MI command and returns its result data as a
// generic Go value (string / map[string]any / []any).
func (c *Client) ExecMI(ctx context.Context, cmd string, scope Scope) (any, error) {
	var data any
	err := c.withScope(ctx, scope, func(ctx context.Context) error {
		out, sendErr := c.dispatcher.SendMI(ctx, cmd, scope.toInternal())
		if sendErr != nil {
			return sendErr
		}
		data = mi.ToGo(out.Data)
		return nil
	})
	if err != nil {
		return nil, translateOutcomeErr(err)
	}
	return data, nil
}

// ExecCMD runs cmd through whichever interpreter its leading character
// implies: "-" selects MI, anything else selects CLI — a convenience for
// callers forwarding user-typed text verbatim (e.g. a REPL).
func (c *Client) ExecCMD(ctx context.Context, cmd string, scope Scope) (any, error) {
	if len(cmd) > 0 && cmd[0] == '-' {
		return c.ExecMI(ctx, cmd, scope)
	}
	body, err := c.ExecCLI(ctx, cmd, scope)
	return body, err
}
