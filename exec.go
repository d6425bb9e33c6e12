package gdbjs

import "context"

// StepIn steps into the next source line, entering any function call.
func (c *Client) StepIn(ctx context.Context, scope Scope) error {
	return c.runExec(ctx, "-exec-step", scope)
}

// StepOut runs until the current function returns.
func (c *Client) StepOut(ctx context.Context, scope Scope) error {
	return c.runExec(ctx, "-exec-finish", scope)
}

// Next steps over the next source line, without entering calls.
func (c *Client) Next(ctx context.Context, scope Scope) error {
	return c.runExec(ctx, "-exec-next", scope)
}

// Run starts (or restarts) execution of the inferior, optionally scoped to
// a specific thread group.
func (c *Client) Run(ctx context.Context, group Scope) error {
	return c.runExec(ctx, "-exec-run", group)
}

// Proceed resumes a stopped inferior.
func (c *Client) Proceed(ctx context.Context, scope Scope) error {
	return c.runExec(ctx, "-exec-continue", scope)
}

func (c *Client) runExec(ctx context.Context, cmd string, scope Scope) error {
	err := c.withScope(ctx, scope, func(ctx context.Context) error {
		_, sendErr := c.dispatcher.SendMI(ctx, cmd, scope.toInternal())
		return sendErr
	})
	return translateOutcomeErr(err)
}
