package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Values holds the live form data keyed by field name. Scalars may be
// strings, numbers, or booleans (checkboxes).
type Values map[string]any

// Clone returns a shallow copy; scalars need nothing deeper.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Text returns the stored value for name in the engine's string form. Missing
// keys yield "".
func (v Values) Text(name string) string {
	if v == nil {
		return ""
	}
	return Text(v[name])
}

// Text converts a scalar form value into the string the validators inspect.
// Booleans become "true"/"false", numbers use their shortest decimal form and
// nil becomes "".
func Text(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", typed)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", typed)
	case float32:
		return formatFloat(float64(typed), 32)
	case float64:
		return formatFloat(typed, 64)
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

func formatFloat(v float64, bits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, bits)
}

// Bool interprets a checkbox value. Strings are parsed leniently ("true",
// "on", "yes", "1"); everything else is false.
func Bool(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "true", "on", "yes", "1":
			return true
		}
	}
	return false
}
