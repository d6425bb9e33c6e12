package dispatch

import (
	"context"
	"fmt"

	"github.com/taskcluster/gdb-js/internal/mi"
)

// PreserveThread runs fn, first capturing the currently selected thread (if
// any) and reselecting it afterward, regardless of fn's outcome. This
// transaction wraps any operation that injects "--thread-group", since
// that silently changes GDB's globally-selected thread.
func (d *Dispatcher) PreserveThread(ctx context.Context, fn func(ctx context.Context) error) error {
	before, err := d.currentThreadID(ctx)
	if err != nil {
		return fmt.Errorf("dispatch: preserve-thread: capture current thread: %w", err)
	}

	fnErr := fn(ctx)

	if before > 0 {
		if _, selErr := d.SendMI(ctx, fmt.Sprintf("-thread-select %d", before), Scope{}); selErr != nil {
			if fnErr == nil {
				return fmt.Errorf("dispatch: preserve-thread: restore thread %d: %w", before, selErr)
			}
			d.logger.Warn("dispatch: failed to restore thread after error", "thread", before, "error", selErr)
		}
	}
	return fnErr
}

// currentThreadID returns GDB's currently selected thread id, or 0 if none
// is selected.
func (d *Dispatcher) currentThreadID(ctx context.Context) (int, error) {
	out, err := d.SendMI(ctx, "-thread-info", Scope{})
	if err != nil {
		return 0, err
	}
	return mi.Int(out.Data, "current-thread-id", 0), nil
}
