// Package gdbjs is a seamless programmatic wrapper around GDB's Machine
// Interface. It spawns or adopts a GDB subprocess running in MI mode,
// multiplexes its single bidirectional byte stream into a structured
// request/response channel plus several asynchronous event channels, and
// exposes a typed API for breakpoint management, execution control,
// thread/thread-group navigation, evaluation, and user-defined
// command/event extensions.
//
// The package never interprets the target program's own output: a
// consumer of the Target event stream should launch GDB with a separate
// inferior TTY (--tty=) so debuggee bytes never interleave with MI
// traffic on the same descriptor.
package gdbjs
