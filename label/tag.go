package label

import (
	"fmt"
	"strconv"
)

// Tag is the persisted type discriminant of a label.
type Tag string

const (
	// TagInt marks signed integer labels.
	TagInt Tag = "int"
	// TagUint marks unsigned integer labels.
	TagUint Tag = "uint"
	// TagFloat marks floating point labels.
	TagFloat Tag = "float"
	// TagString marks text labels.
	TagString Tag = "str"
)

// aliases accepted on load; artifacts written by older tooling used these names.
var aliases = map[string]Tag{
	"int":     TagInt,
	"int64":   TagInt,
	"long":    TagInt,
	"uint":    TagUint,
	"uint64":  TagUint,
	"float":   TagFloat,
	"float64": TagFloat,
	"double":  TagFloat,
	"str":     TagString,
	"_str":    TagString,
	"string":  TagString,
}

// ErrUnknownTypeTag is returned when a persisted tag is outside the known set.
type ErrUnknownTypeTag struct {
	Tag string
}

func (e *ErrUnknownTypeTag) Error() string {
	return fmt.Sprintf("unknown label type tag: %q", e.Tag)
}

// Tag returns the type tag of v.
func (v Value) Tag() Tag {
	switch v.Kind {
	case KindInt:
		return TagInt
	case KindUint:
		return TagUint
	case KindFloat:
		return TagFloat
	case KindString:
		return TagString
	default:
		return ""
	}
}

// ResolveTag maps a persisted tag name (including aliases) to its canonical Tag.
func ResolveTag(name string) (Tag, error) {
	t, ok := aliases[name]
	if !ok {
		return "", &ErrUnknownTypeTag{Tag: name}
	}
	return t, nil
}

// Parse reconstructs a typed label from its text form and tag.
func Parse(text, tag string) (Value, error) {
	t, err := ResolveTag(tag)
	if err != nil {
		return Value{}, err
	}

	switch t {
	case TagInt:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as %s: %w", text, t, err)
		}
		return Int(i), nil
	case TagUint:
		u, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as %s: %w", text, t, err)
		}
		return Uint(u), nil
	case TagFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as %s: %w", text, t, err)
		}
		return Float(f), nil
	default:
		return String(text), nil
	}
}
