// Package scripts embeds the debugger-side Python helper scripts injected
// by Client.Init, in the order GDB's persistent Python interpreter needs
// to see them: base.py defines the shared "concat" framing and the
// gdbjs_exec helper that exec.py calls.
package scripts

import _ "embed"

//go:embed base.py
var base string

//go:embed exec.py
var exec string

//go:embed context.py
var context string

//go:embed sources.py
var sources string

//go:embed identity.py
var identity string

//go:embed events.py
var events string

// All holds every helper script body, in injection order.
var All = []string{base, exec, context, sources, identity, events}
