package formbody

import (
	"fmt"
	"net/url"
)

// Values holds decoded body fields. A field that decoded to exactly one raw
// value is stored as a scalar string; a field submitted more than once is
// stored as an ordered []string preserving submission order. JSON bodies may
// contribute arbitrary value types.
type Values map[string]any

// Normalize converts url.Values into the scalar-or-sequence form consumed by
// reflection and field accessors: single-element slices unwrap to a string,
// everything else stays an ordered slice.
func Normalize(src url.Values) Values {
	out := make(Values, len(src))
	for name, raw := range src {
		if len(raw) == 1 {
			out[name] = raw[0]
			continue
		}
		vals := make([]string, len(raw))
		copy(vals, raw)
		out[name] = vals
	}
	return out
}

// Has reports whether the field is present.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Scalar returns the field as a single string: the value itself for scalar
// fields, the first element for sequence fields, and a formatted string for
// other value types. Returns empty string when the field is absent.
func (v Values) Scalar(name string) string {
	switch val := v[name].(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		if len(val) == 0 {
			return ""
		}
		return val[0]
	case []any:
		if len(val) == 0 {
			return ""
		}
		return fmt.Sprint(val[0])
	default:
		return fmt.Sprint(val)
	}
}

// All returns every value of the field in submission order.
// A scalar field yields a single-element slice; an absent field yields nil.
func (v Values) All(name string) []string {
	switch val := v[name].(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []string:
		return val
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = fmt.Sprint(item)
		}
		return out
	default:
		return []string{fmt.Sprint(val)}
	}
}

// At returns the value at the given position for a sequence field, reporting
// whether a value exists there. Scalar fields only have position 0.
func (v Values) At(name string, idx int) (string, bool) {
	all := v.All(name)
	if idx < 0 || idx >= len(all) {
		return "", false
	}
	return all[idx], true
}
