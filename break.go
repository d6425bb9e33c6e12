package gdbjs

import (
	"context"
	"fmt"

	"github.com/taskcluster/gdb-js/internal/dispatch"
	"github.com/taskcluster/gdb-js/internal/entities"
)

// AddBreak inserts a breakpoint at file:pos ("file:line" or "file:func").
func (c *Client) AddBreak(ctx context.Context, file string, pos string, scope Scope) (*Breakpoint, error) {
	return c.breakInsert(ctx, fmt.Sprintf("%s:%s", file, pos), scope)
}

// AddFunctionBreak inserts a breakpoint on a function name.
func (c *Client) AddFunctionBreak(ctx context.Context, name string, scope Scope) (*Breakpoint, error) {
	return c.breakInsert(ctx, name, scope)
}

// AddLabelBreak inserts a breakpoint on a source label.
func (c *Client) AddLabelBreak(ctx context.Context, label string, scope Scope) (*Breakpoint, error) {
	return c.breakInsert(ctx, label, scope)
}

// AddOptionsBreak inserts a breakpoint passing raw "-break-insert" option
// text verbatim (e.g. "-t -c \"i==3\" main"), for cases the narrower
// helpers above don't cover.
func (c *Client) AddOptionsBreak(ctx context.Context, options string, scope Scope) (*Breakpoint, error) {
	return c.breakInsert(ctx, options, scope)
}

func (c *Client) breakInsert(ctx context.Context, args string, scope Scope) (*Breakpoint, error) {
	var bp *Breakpoint
	err := c.withScope(ctx, scope, func(ctx context.Context) error {
		out, err := c.dispatcher.SendMI(ctx, "-break-insert "+args, scope.toInternal())
		if err != nil {
			return err
		}
		v, ok := out.Data.Get("bkpt")
		if !ok {
			return &ProtocolError{Reason: "break-insert result missing bkpt field"}
		}
		bp = entities.BreakpointFromValue(v)
		return nil
	})
	if err != nil {
		return nil, translateOutcomeErr(err)
	}
	return bp, nil
}

// RemoveBreak deletes bp.
func (c *Client) RemoveBreak(ctx context.Context, bp *Breakpoint) error {
	err := c.do(ctx, func(ctx context.Context) error {
		_, err := c.dispatcher.SendMI(ctx, fmt.Sprintf("-break-delete %d", bp.ID), dispatch.Scope{})
		return err
	})
	return translateOutcomeErr(err)
}

