package gdbjs

import "github.com/taskcluster/gdb-js/internal/stream"

// Event names for the high-level events synthesized by the stream
// demultiplexer.
const (
	EventStopped             = "stopped"
	EventRunning             = "running"
	EventThreadCreated       = "thread-created"
	EventThreadExited        = "thread-exited"
	EventThreadGroupStarted  = "thread-group-started"
	EventThreadGroupExited   = "thread-group-exited"
	EventNewObjfile          = "new-objfile"
)

// Event, and its payload types, alias the stream package's so callers
// never need to import internal packages.
type (
	Event                     = stream.Event
	StoppedEvent              = stream.StoppedData
	RunningEvent              = stream.RunningData
	ThreadLifecycleEvent      = stream.ThreadLifecycleData
	ThreadGroupLifecycleEvent = stream.ThreadGroupLifecycleData
	NewObjfileEvent           = stream.NewObjfileData
	CustomEvent               = stream.EmbeddedEvent
)

// Events subscribes to every high-level event (stopped, running,
// thread-created, ...) as well as any custom name a debugger-side Python
// script pushes through the embedded-event channel.
func (c *Client) Events() <-chan Event {
	return c.demux.Events.Subscribe()
}

// CustomEvents subscribes to the raw embedded-event channel (name + raw
// decoded JSON payload), for scripts that emit events Events() doesn't
// already surface as a typed payload.
func (c *Client) CustomEvents() <-chan CustomEvent {
	return c.demux.ConsoleEvents.Subscribe()
}

// Console subscribes to the user-visible console output stream, with
// wrapper-internal frames already stripped.
func (c *Client) Console() <-chan string {
	return c.demux.Console.Subscribe()
}

// Target subscribes to the inferior's own output, when GDB is launched
// without a separate --tty.
func (c *Client) Target() <-chan string {
	return c.demux.Target.Subscribe()
}

// Log subscribes to GDB's internal log stream.
func (c *Client) Log() <-chan string {
	return c.demux.Log.Subscribe()
}
