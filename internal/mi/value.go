// Package mi implements a grammar-driven parser for GDB/MI's line-oriented
// record syntax: result, exec, status, notify, console, target, and log
// records, plus the three value shapes MI mixes inside them (c-strings,
// tuples, and lists).
//
// The parser is pure: a line in, a Record out, with no state carried
// between calls. Malformed input is never an error — it degrades to a
// RawRecord, per the grammar's own fallback rule.
package mi

import "strings"

// Kind identifies the concrete shape of a Value.
type Kind int

const (
	CStringKind Kind = iota
	TupleKind
	ListKind
)

// Value is the sum type MI uses for every result's right-hand side.
type Value interface {
	Kind() Kind
}

// CString is a decoded c-string literal.
type CString string

func (CString) Kind() Kind { return CStringKind }

// Tuple is a mapping from result-name to Value, with insertion order kept
// around for diagnostics (not required by the grammar's semantics, but
// handy when dumping a record for a log line).
type Tuple struct {
	order []string
	m     map[string]Value
}

func newTuple() *Tuple {
	return &Tuple{m: make(map[string]Value)}
}

func (*Tuple) Kind() Kind { return TupleKind }

// Get returns the value bound to name, if any.
func (t *Tuple) Get(name string) (Value, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.m[name]
	return v, ok
}

// Keys returns the tuple's result names in insertion order.
func (t *Tuple) Keys() []string {
	if t == nil {
		return nil
	}
	return t.order
}

func (t *Tuple) Len() int { return len(t.order) }

// add binds name to value, collapsing repeated names into an ordered,
// "collapsed" List — this is the <MULTIPLE>-address rule from
// breakpoint-modified notifications: GDB emits several unnamed entries
// under the same preceding name, and those must not clobber each other.
func (t *Tuple) add(name string, value Value) {
	if cur, ok := t.m[name]; ok {
		if lst, ok := cur.(*List); ok && lst.collapsed {
			lst.Items = append(lst.Items, value)
			return
		}
		t.m[name] = &List{collapsed: true, Items: []Value{cur, value}}
		return
	}
	t.order = append(t.order, name)
	t.m[name] = value
}

// List is MI's other container shape: either an ordered sequence of bare
// values, or (after collapsing, see add above) the ordered multi-value
// form of a single repeated result name. A list whose entries are *all*
// named results is never represented as a List at all — parseList (in
// record.go) returns a *Tuple for that case.
type List struct {
	Items     []Value
	collapsed bool
}

func (*List) Kind() Kind { return ListKind }

// entry is one parsed "name? = value" production, used while building
// both tuples and the named-list collapsing case.
type entry struct {
	name  *string
	value Value
}

// flatten implements the naming rule shared by tuples and named lists:
// a result's name may be omitted, in which case it inherits the
// immediately preceding entry's name; if the very first entry has no
// name, it is bound under the synthetic key "unnamed" — the only place
// this parser invents a name.
const unnamedKey = "unnamed"

func flatten(entries []entry) *Tuple {
	t := newTuple()
	prev := unnamedKey
	for _, e := range entries {
		name := prev
		if e.name != nil {
			name = *e.name
		}
		prev = name
		t.add(name, e.value)
	}
	return t
}

func dumpValue(v Value) string {
	switch x := v.(type) {
	case CString:
		return string(x)
	case *Tuple:
		var b strings.Builder
		b.WriteByte('{')
		for i, k := range x.order {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(dumpValue(x.m[k]))
		}
		b.WriteByte('}')
		return b.String()
	case *List:
		var b strings.Builder
		b.WriteByte('[')
		for i, it := range x.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(dumpValue(it))
		}
		b.WriteByte(']')
		return b.String()
	default:
		return "<nil>"
	}
}
