package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GetAsString coerces the given value into a string
func GetAsString(s any) (string, error) {
	if s == nil {
		return "", fmt.Errorf("cannot convert nil to string")
	}

	switch v := s.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		// Trim the mantissa when the value is integral, since season years
		// and goal counts frequently arrive as JSON numbers
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), nil
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("cannot convert %T to string", s)
	}
}

// GetAsInteger coerces the given value into an int
func GetAsInteger(s any) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("cannot convert nil to integer")
	}

	switch v := s.(type) {
	case int:
		return v, nil
	case int64:
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, fmt.Errorf("int64 value %d is out of int range", v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("float value %f is not integral", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to integer: %w", v, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to integer", s)
	}
}
