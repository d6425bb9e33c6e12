package gdbjs

import (
	"context"

	"github.com/taskcluster/gdb-js/internal/entities"
	"github.com/taskcluster/gdb-js/internal/mi"
)

// Callstack returns the stack frames of scope's thread (current thread if
// scope is the zero value), outermost frame last, as GDB orders them.
func (c *Client) Callstack(ctx context.Context, scope Scope) ([]Frame, error) {
	var frames []Frame
	err := c.withScope(ctx, scope, func(ctx context.Context) error {
		out, sendErr := c.dispatcher.SendMI(ctx, "-stack-list-frames", scope.toInternal())
		if sendErr != nil {
			return sendErr
		}
		stack := mi.Tup(out.Data, "stack")
		// Several "frame=" entries collapse into a List; a lone one stays a
		// single Tuple.
		var items []mi.Value
		if lst := mi.Lst(stack, "frame"); lst != nil {
			items = lst.Items
		} else if one := mi.Tup(stack, "frame"); one != nil {
			items = []mi.Value{one}
		}
		if len(items) == 0 {
			return nil
		}
		frames = make([]Frame, 0, len(items))
		for _, item := range items {
			t, ok := item.(*mi.Tuple)
			if !ok {
				continue
			}
			if f := entities.FrameFromTuple(t); f != nil {
				frames = append(frames, *f)
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateOutcomeErr(err)
	}
	return frames, nil
}
