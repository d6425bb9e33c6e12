package gdbjs

import (
	"context"

	"github.com/taskcluster/gdb-js/internal/dispatch"
)

// Scope narrows a public operation to a specific thread or thread group,
// injecting "--thread"/"--thread-group" (MI) or "thread apply"/inferior
// switch (CLI). The zero value means "no scope".
type Scope struct {
	kind     dispatch.ScopeKind
	threadID int
	groupID  int
}

// ForThread scopes an operation to a single thread.
func ForThread(id int) Scope {
	return Scope{kind: dispatch.ThreadScope, threadID: id}
}

// ForThreadGroup scopes an operation to a thread group (inferior).
// Injecting this scope always goes through a preserve-thread transaction
//, since it perturbs GDB's globally-selected thread.
func ForThreadGroup(id int) Scope {
	return Scope{kind: dispatch.ThreadGroupScope, groupID: id}
}

func (s Scope) toInternal() dispatch.Scope {
	switch s.kind {
	case dispatch.ThreadScope:
		return dispatch.Thread(s.threadID)
	case dispatch.ThreadGroupScope:
		return dispatch.ThreadGroupOf(s.groupID)
	default:
		return dispatch.Scope{}
	}
}

func (s Scope) requiresPreserve() bool { return s.toInternal().RequiresPreserve() }

// withScope runs fn under scope as a single ticket of the dispatcher's
// mutual-exclusion queue, wrapping it in a preserve-thread transaction
// first when scope requires it.
func (c *Client) withScope(ctx context.Context, scope Scope, fn func(ctx context.Context) error) error {
	return c.dispatcher.Do(ctx, func(ctx context.Context) error {
		if scope.requiresPreserve() {
			return c.dispatcher.PreserveThread(ctx, fn)
		}
		return fn(ctx)
	})
}

// do runs fn as a single ticket of the dispatcher's mutual-exclusion
// queue, for operations with no scope to inject.
func (c *Client) do(ctx context.Context, fn func(ctx context.Context) error) error {
	return c.dispatcher.Do(ctx, fn)
}
