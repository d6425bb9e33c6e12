package gdbjs

import "github.com/taskcluster/gdb-js/internal/entities"

// Thread, ThreadGroup, Breakpoint, Frame and Variable are value types: each
// call returns a fresh snapshot, never a shared mutable graph. They are
// defined in internal/entities so the stream demultiplexer can construct
// them while synthesizing high-level events without importing this
// package (which imports internal/stream).
type (
	Thread      = entities.Thread
	ThreadGroup = entities.ThreadGroup
	Breakpoint  = entities.Breakpoint
	Frame       = entities.Frame
	Variable    = entities.Variable
)
