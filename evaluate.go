package gdbjs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taskcluster/gdb-js/internal/mi"
)

// Evaluate evaluates expr in scope's context and returns its textual value,
// via "-data-evaluate-expression".
func (c *Client) Evaluate(ctx context.Context, expr string, scope Scope) (string, error) {
	var value string
	err := c.withScope(ctx, scope, func(ctx context.Context) error {
		out, sendErr := c.dispatcher.SendMI(ctx, fmt.Sprintf("-data-evaluate-expression %q", expr), scope.toInternal())
		if sendErr != nil {
			return sendErr
		}
		value = mi.String(out.Data, "value", "")
		return nil
	})
	if err != nil {
		return "", translateOutcomeErr(err)
	}
	return value, nil
}

// Context returns every symbol visible at scope's current position, using
// the debugger-side "context" helper script installed by Init. The
// script prints a JSON array the wrapper decodes here, parsing the CLI
// body as structured data rather than a plain string (as SourceFiles does
// for the "sources" script).
func (c *Client) Context(ctx context.Context, scope Scope) ([]Variable, error) {
	body, err := c.ExecCLI(ctx, "context", scope)
	if err != nil {
		return nil, err
	}
	var raw []struct {
		Name  string `json:"name"`
		Type  string `json:"type"`
		Scope string `json:"scope"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, &ProtocolError{Reason: "context: malformed JSON payload: " + err.Error()}
	}
	vars := make([]Variable, len(raw))
	for i, r := range raw {
		vars[i] = Variable{Name: r.Name, Type: r.Type, Scope: r.Scope, Value: r.Value}
	}
	return vars, nil
}
