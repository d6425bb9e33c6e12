package gdbjs

import (
	"context"
	"fmt"

	"github.com/taskcluster/gdb-js/internal/dispatch"
	"github.com/taskcluster/gdb-js/internal/entities"
	"github.com/taskcluster/gdb-js/internal/mi"
	"github.com/taskcluster/gdb-js/internal/stream"
)

// Threads lists every thread GDB currently knows about, optionally scoped
// to one thread group.
func (c *Client) Threads(ctx context.Context, scope Scope) ([]Thread, error) {
	var threads []Thread
	err := c.withScope(ctx, scope, func(ctx context.Context) error {
		out, sendErr := c.dispatcher.SendMI(ctx, "-thread-info", scope.toInternal())
		if sendErr != nil {
			return sendErr
		}
		lst := mi.Lst(out.Data, "threads")
		if lst == nil {
			return nil
		}
		threads = make([]Thread, 0, len(lst.Items))
		for _, item := range lst.Items {
			t, ok := item.(*mi.Tuple)
			if !ok {
				continue
			}
			threads = append(threads, threadFromInfo(t))
		}
		return nil
	})
	if err != nil {
		return nil, translateOutcomeErr(err)
	}
	return threads, nil
}

// CurrentThread returns GDB's currently selected thread, or nil if none is
// selected.
func (c *Client) CurrentThread(ctx context.Context) (*Thread, error) {
	var out stream.Outcome
	err := c.do(ctx, func(ctx context.Context) error {
		var sendErr error
		out, sendErr = c.dispatcher.SendMI(ctx, "-thread-info", dispatch.Scope{})
		return sendErr
	})
	if err != nil {
		return nil, translateOutcomeErr(err)
	}
	id := mi.Int(out.Data, "current-thread-id", 0)
	if id == 0 {
		return nil, nil
	}
	lst := mi.Lst(out.Data, "threads")
	if lst != nil {
		for _, item := range lst.Items {
			t, ok := item.(*mi.Tuple)
			if !ok {
				continue
			}
			if mi.Int(t, "id", 0) == id {
				th := threadFromInfo(t)
				return &th, nil
			}
		}
	}
	return &Thread{ID: id}, nil
}

// SelectThread makes thread GDB's globally-selected thread.
func (c *Client) SelectThread(ctx context.Context, thread *Thread) error {
	err := c.do(ctx, func(ctx context.Context) error {
		_, err := c.dispatcher.SendMI(ctx, fmt.Sprintf("-thread-select %d", thread.ID), dispatch.Scope{})
		return err
	})
	return translateOutcomeErr(err)
}

// ThreadGroups lists every thread group (inferior) GDB knows about.
func (c *Client) ThreadGroups(ctx context.Context) ([]ThreadGroup, error) {
	var out stream.Outcome
	err := c.do(ctx, func(ctx context.Context) error {
		var sendErr error
		out, sendErr = c.dispatcher.SendMI(ctx, "-list-thread-groups", dispatch.Scope{})
		return sendErr
	})
	if err != nil {
		return nil, translateOutcomeErr(err)
	}
	lst := mi.Lst(out.Data, "groups")
	if lst == nil {
		return nil, nil
	}
	groups := make([]ThreadGroup, 0, len(lst.Items))
	for _, item := range lst.Items {
		t, ok := item.(*mi.Tuple)
		if !ok {
			continue
		}
		id, _ := entities.ParseGroupID(mi.String(t, "id", ""))
		g := ThreadGroup{ID: id, Executable: mi.String(t, "executable", "")}
		if mi.Has(t, "pid") {
			g.Pid = mi.Int(t, "pid", 0)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// CurrentThreadGroup returns the thread group SelectThreadGroup last
// selected (GDB's default inferior, "1", until changed).
func (c *Client) CurrentThreadGroup() ThreadGroup {
	c.groupMu.Lock()
	defer c.groupMu.Unlock()
	return ThreadGroup{ID: c.currentGroupID}
}

// SelectThreadGroup switches the current inferior. GDB has no MI verb for
// this; it is sent as the CLI command "inferior <id>".
func (c *Client) SelectThreadGroup(ctx context.Context, group *ThreadGroup) error {
	err := c.do(ctx, func(ctx context.Context) error {
		_, err := c.dispatcher.SendCLI(ctx, fmt.Sprintf("inferior %d", group.ID), dispatch.Scope{})
		return err
	})
	if err != nil {
		return translateOutcomeErr(err)
	}
	c.groupMu.Lock()
	c.currentGroupID = group.ID
	c.groupMu.Unlock()
	return nil
}

func threadFromInfo(t *mi.Tuple) Thread {
	return Thread{
		ID:     mi.Int(t, "id", 0),
		Status: mi.String(t, "state", ""),
		Frame:  entities.FrameFromTuple(mi.Tup(t, "frame")),
	}
}
