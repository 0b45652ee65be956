package label

import (
	"math"
	"strconv"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid (zero) label.
	KindInvalid Kind = iota
	// KindInt represents a signed integer label.
	KindInt
	// KindUint represents an unsigned integer label.
	KindUint
	// KindFloat represents a floating point label.
	KindFloat
	// KindString represents a text label.
	KindString
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a raw or encoded label.
//
// Value is comparable and can be used directly as a map key. Only the field
// selected by Kind is meaningful.
//
// NOTE: This is also used for persistence; keep it stable.
type Value struct {
	Kind Kind    `json:"k"`
	I64  int64   `json:"i,omitempty"`
	U64  uint64  `json:"u,omitempty"`
	F64  float64 `json:"f,omitempty"`
	S    string  `json:"s,omitempty"`
}

// Int returns a signed integer label.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Uint returns an unsigned integer label.
func Uint(v uint64) Value { return Value{Kind: KindUint, U64: v} }

// Float returns a floating point label. Negative zero is folded into zero.
func Float(v float64) Value {
	if v == 0 {
		v = 0
	}
	return Value{Kind: KindFloat, F64: v}
}

// String returns a text label.
func String(v string) Value { return Value{Kind: KindString, S: v} }

// Valid reports whether v can take part in an encoder.
// Invalid kinds and NaN floats are rejected since they have no total order.
func (v Value) Valid() bool {
	switch v.Kind {
	case KindInt, KindUint, KindString:
		return true
	case KindFloat:
		return !math.IsNaN(v.F64)
	default:
		return false
	}
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsUint64 returns the uint64 value if Kind is KindUint.
func (v Value) AsUint64() (uint64, bool) {
	if v.Kind != KindUint {
		return 0, false
	}
	return v.U64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the text value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.S, true
}

// Any returns the label as a plain Go value (int64, uint64, float64 or string).
func (v Value) Any() any {
	switch v.Kind {
	case KindInt:
		return v.I64
	case KindUint:
		return v.U64
	case KindFloat:
		return v.F64
	case KindString:
		return v.S
	default:
		return nil
	}
}

// String returns the canonical text form used in persisted artifacts.
//
// Floats use the shortest representation that parses back to the same bits.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindUint:
		return strconv.FormatUint(v.U64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return v.S
	default:
		return "<invalid>"
	}
}
