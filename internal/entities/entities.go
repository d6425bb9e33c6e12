// Package entities holds the wrapper's domain value types. They are
// immutable records with no back-reference to the client that produced
// them so both the stream demultiplexer (which
// synthesizes high-level events containing them) and the public facade
// (which returns them from typed API calls) can build them without
// creating an import cycle between the two.
package entities

import (
	"strconv"
	"strings"

	"github.com/taskcluster/gdb-js/internal/mi"
)

// Thread is a debuggee thread as GDB/MI reports it.
type Thread struct {
	ID     int
	Status string
	Group  *ThreadGroup
	Frame  *Frame
}

// ThreadGroup is an inferior under GDB's control. MI encodes its
// identifier as "i<N>"; ID is the numeric suffix.
type ThreadGroup struct {
	ID         int
	Executable string
	Pid        int
}

// Breakpoint is a location GDB will stop at.
type Breakpoint struct {
	ID     int
	File   string
	Line   int
	Func   string
	Funcs  []string // populated instead of Func for template/overload inserts
	Thread *Thread
}

// Frame is one stack frame.
type Frame struct {
	File  string
	Line  int
	Func  string
	Level int
}

// Variable is one name/type/scope/value record from a Context call.
type Variable struct {
	Name  string
	Type  string
	Scope string
	Value string
}

// ParseGroupID strips MI's "i" prefix from a thread-group identifier
// string ("i1" -> 1). Returns 0, false if s doesn't match that shape.
func ParseGroupID(s string) (int, bool) {
	if !strings.HasPrefix(s, "i") {
		return 0, false
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatGroupID reconstructs the "i<N>" form MI commands expect.
func FormatGroupID(id int) string {
	return "i" + strconv.Itoa(id)
}

// FrameFromTuple builds a Frame from a "frame={...}" MI tuple.
func FrameFromTuple(t *mi.Tuple) *Frame {
	if t == nil {
		return nil
	}
	return &Frame{
		File:  firstNonEmpty(mi.String(t, "fullname", ""), mi.String(t, "file", "")),
		Line:  mi.Int(t, "line", 0),
		Func:  mi.String(t, "func", ""),
		Level: mi.Int(t, "level", 0),
	}
}

// BreakpointFromValue builds a Breakpoint from a "bkpt=" MI value, which
// GDB renders either as a single tuple or, for templates/overloaded
// functions, as a list whose first element is the composite breakpoint
// and whose remaining elements are per-location entries — in that
// case Funcs collects every location's func value in order and Func is
// left empty.
func BreakpointFromValue(v mi.Value) *Breakpoint {
	switch x := v.(type) {
	case *mi.Tuple:
		return breakpointFromTuple(x)
	case *mi.List:
		if len(x.Items) == 0 {
			return nil
		}
		first, _ := x.Items[0].(*mi.Tuple)
		bp := breakpointFromTuple(first)
		if bp == nil {
			return nil
		}
		var funcs []string
		for _, item := range x.Items {
			t, ok := item.(*mi.Tuple)
			if !ok {
				continue
			}
			if f := mi.String(t, "func", ""); f != "" {
				funcs = append(funcs, f)
			}
		}
		if len(funcs) > 0 {
			bp.Funcs = funcs
			bp.Func = ""
		}
		return bp
	default:
		return nil
	}
}

func breakpointFromTuple(t *mi.Tuple) *Breakpoint {
	if t == nil {
		return nil
	}
	return &Breakpoint{
		ID:   mi.Int(t, "number", 0),
		File: firstNonEmpty(mi.String(t, "fullname", ""), mi.String(t, "file", "")),
		Line: mi.Int(t, "line", 0),
		Func: mi.String(t, "func", ""),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
