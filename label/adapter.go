package label

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// FromAny converts a Go value into a typed label.
//
// This exists as an adapter layer for configuration and user input.
// json.Number values become Int when integral and Float otherwise.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case string:
		return String(x), nil
	case float64:
		if math.IsNaN(x) {
			return Value{}, fmt.Errorf("label NaN is not allowed")
		}
		return Float(x), nil
	case float32:
		if math.IsNaN(float64(x)) {
			return Value{}, fmt.Errorf("label NaN is not allowed")
		}
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Uint(uint64(x)), nil
	case uint8:
		return Uint(uint64(x)), nil
	case uint16:
		return Uint(uint64(x)), nil
	case uint32:
		return Uint(uint64(x)), nil
	case uint64:
		return Uint(x), nil
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return Int(i), nil
		}
		f, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return Value{}, fmt.Errorf("label number %q: %w", x, err)
		}
		return FromAny(f)
	default:
		return Value{}, fmt.Errorf("unsupported label type %T", v)
	}
}

// MustFromAny is like FromAny but panics on error. Intended for tests.
func MustFromAny(v any) Value {
	l, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return l
}
