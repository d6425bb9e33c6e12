package mi

// ToGo converts a parsed Value into a plain Go value (string, map[string]any,
// or []any) for callers that want a generic, JSON-marshalable view of raw
// MI data — used by the facade's ExecMI escape hatch, never by the
// internal pipeline itself.
func ToGo(v Value) any {
	switch x := v.(type) {
	case nil:
		return nil
	case CString:
		return string(x)
	case *Tuple:
		m := make(map[string]any, x.Len())
		for _, k := range x.order {
			m[k] = ToGo(x.m[k])
		}
		return m
	case *List:
		out := make([]any, len(x.Items))
		for i, item := range x.Items {
			out[i] = ToGo(item)
		}
		return out
	default:
		return nil
	}
}
