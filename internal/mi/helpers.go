package mi

import "strconv"

// String returns the string stored under name in t, or def if absent or
// not a CString. The parser itself never interprets MI payloads, but call
// sites that build domain entities need a concise way to pull scalars out.
func String(t *Tuple, name, def string) string {
	v, ok := t.Get(name)
	if !ok {
		return def
	}
	cs, ok := v.(CString)
	if !ok {
		return def
	}
	return string(cs)
}

// Int coerces a numeric-string field to int, defaulting on absence or a
// parse failure.
func Int(t *Tuple, name string, def int) int {
	s := String(t, name, "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Tup returns the named field as a *Tuple, or nil if absent or not a tuple.
func Tup(t *Tuple, name string) *Tuple {
	v, ok := t.Get(name)
	if !ok {
		return nil
	}
	tt, ok := v.(*Tuple)
	if !ok {
		return nil
	}
	return tt
}

// Lst returns the named field as a *List, or nil if absent or not a list.
func Lst(t *Tuple, name string) *List {
	v, ok := t.Get(name)
	if !ok {
		return nil
	}
	l, ok := v.(*List)
	if !ok {
		return nil
	}
	return l
}

// Has reports whether name is present in t at all.
func Has(t *Tuple, name string) bool {
	_, ok := t.Get(name)
	return ok
}
