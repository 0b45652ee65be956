package label

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// ErrMixedKinds is returned when labels of different kinds are ordered together.
type ErrMixedKinds struct {
	A Kind
	B Kind
}

func (e *ErrMixedKinds) Error() string {
	return fmt.Sprintf("mixed label kinds: %s and %s", e.A, e.B)
}

// Compare orders two labels of the same kind.
// It returns -1, 0 or +1, and an *ErrMixedKinds when the kinds differ.
func Compare(a, b Value) (int, error) {
	if a.Kind != b.Kind {
		return 0, &ErrMixedKinds{A: a.Kind, B: b.Kind}
	}
	switch a.Kind {
	case KindInt:
		return cmp.Compare(a.I64, b.I64), nil
	case KindUint:
		return cmp.Compare(a.U64, b.U64), nil
	case KindFloat:
		return cmp.Compare(a.F64, b.F64), nil
	case KindString:
		return strings.Compare(a.S, b.S), nil
	default:
		return 0, fmt.Errorf("compare invalid label kind %d", a.Kind)
	}
}

// Sort sorts labels in place under their natural order.
// The population must be homogeneous; the first kind mismatch is returned.
func Sort(values []Value) error {
	if err := CheckHomogeneous(values); err != nil {
		return err
	}
	slices.SortFunc(values, func(a, b Value) int {
		c, _ := Compare(a, b)
		return c
	})
	return nil
}

// CheckHomogeneous verifies that all labels share one valid kind.
func CheckHomogeneous(values []Value) error {
	if len(values) == 0 {
		return nil
	}
	first := values[0].Kind
	for _, v := range values {
		if !v.Valid() {
			return fmt.Errorf("invalid label %s (kind %s)", v, v.Kind)
		}
		if v.Kind != first {
			return &ErrMixedKinds{A: first, B: v.Kind}
		}
	}
	return nil
}
