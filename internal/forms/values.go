package forms

// Values is the current input state of a form, keyed by field name.
// A value is a string, a []string (multi-select) or a bool.
type Values map[string]any

// String returns the value for name as a string, or "" when absent or
// of another type.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Strings returns the value for name as a string slice.
func (v Values) Strings(name string) []string {
	s, _ := v[name].([]string)
	return s
}

// Bool returns the value for name as a bool.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Empty reports whether the value for name is absent or blank. A bool
// is empty only when false; a slice only when it has no elements.
func (v Values) Empty(name string) bool {
	switch val := v[name].(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case bool:
		return !val
	default:
		return false
	}
}

// Clone returns a shallow copy. Slices are copied so mutating the clone
// cannot leak into the original snapshot.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		if s, ok := val.([]string); ok {
			cp := make([]string, len(s))
			copy(cp, s)
			out[k] = cp
			continue
		}
		out[k] = val
	}
	return out
}
