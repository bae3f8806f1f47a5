package sanitizer

import (
	"fmt"
	"strconv"
)

// Value sanitizes an arbitrary decoded value.
//
// Maps and slices are rebuilt with every element sanitized, keeping their
// structure. Scalars are converted to strings and passed through Clean:
// nil becomes "", true becomes "1" and false becomes "".
func Value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Value(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Value(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Clean(item)
		}
		return out
	default:
		return Clean(Scalar(val))
	}
}

// Map sanitizes every value of m. A nil map yields an empty one.
func Map(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out, _ := Value(m).(map[string]any)
	return out
}

// Scalar renders a scalar value as a string.
func Scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "1"
		}
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
