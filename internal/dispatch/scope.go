package dispatch

import "github.com/taskcluster/gdb-js/internal/entities"

// ScopeKind selects which GDB "register" a command should be injected
// against: none, a specific thread, or a specific thread group.
type ScopeKind int

const (
	NoScope ScopeKind = iota
	ThreadScope
	ThreadGroupScope
)

// Scope carries the optional thread/thread-group a public operation was
// called with.
type Scope struct {
	Kind     ScopeKind
	ThreadID int
	GroupID  int
}

// Thread builds a Thread-scoped Scope.
func Thread(id int) Scope { return Scope{Kind: ThreadScope, ThreadID: id} }

// ThreadGroupOf builds a ThreadGroup-scoped Scope.
func ThreadGroupOf(id int) Scope { return Scope{Kind: ThreadGroupScope, GroupID: id} }

// RequiresPreserve reports whether injecting this scope perturbs GDB's
// globally-selected thread and therefore needs a preserve-thread
// transaction wrapped around it.
func (s Scope) RequiresPreserve() bool { return s.Kind == ThreadGroupScope }

func (s Scope) groupIDString() string { return entities.FormatGroupID(s.GroupID) }
