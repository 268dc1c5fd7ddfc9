package dataset

import "time"

// toFloat64 converts the numeric types a criterion scalar may arrive as.
// Returns the converted value and true, or 0 and false if conversion fails.
func toFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}

	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// toInt64 converts integral criterion scalars to int64.
func toInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint:
		return int64(val), true
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint64:
		return int64(val), true
	default:
		return 0, false
	}
}

// toTime converts a criterion scalar to a time value.
func toTime(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}

// toString converts a criterion scalar to a string value.
func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// toBool converts a criterion scalar to a bool value.
func toBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}
