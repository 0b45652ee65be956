// Package encoder builds the bijection between raw labels and dense encoded ids.
//
// An Encoder is created once, by discovery over a dataset, from explicit
// pairs, or from configuration, and is read-only afterwards. It can be shared
// by any number of goroutines without locking.
package encoder

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/labeltransform/internal/conv"
	"github.com/hupe1980/labeltransform/label"
)

var (
	// ErrNotBijective is returned when two keys share a value or a key repeats.
	ErrNotBijective = errors.New("label mapping is not bijective")

	// ErrEmptyCatalog is returned when discovery finds no labels.
	ErrEmptyCatalog = errors.New("no labels found")

	// ErrLabelListMismatch is returned when a configured key has no entry in the label list.
	ErrLabelListMismatch = errors.New("label encoder key missing from label list")
)

// Direction selects which side of the bijection is looked up.
type Direction uint8

const (
	// Forward maps raw labels to encoded ids.
	Forward Direction = iota
	// Inverse maps encoded ids back to raw labels.
	Inverse
)

func (d Direction) String() string {
	if d == Inverse {
		return "inverse"
	}
	return "forward"
}

// Pair is one raw label and its encoded counterpart.
type Pair struct {
	Key   label.Value
	Value label.Value
}

// Encoder is an immutable raw label <-> encoded label bijection.
type Encoder struct {
	pairs   []Pair // sorted by key
	forward map[label.Value]label.Value
	inverse map[label.Value]label.Value
}

// New builds an encoder from explicit pairs.
//
// Keys must be homogeneous, values must be homogeneous, and the mapping must
// be one-to-one in both directions.
func New(pairs []Pair) (*Encoder, error) {
	keys := make([]label.Value, len(pairs))
	values := make([]label.Value, len(pairs))
	for i, p := range pairs {
		keys[i], values[i] = p.Key, p.Value
	}
	if err := label.CheckHomogeneous(keys); err != nil {
		return nil, fmt.Errorf("encoder keys: %w", err)
	}
	if err := label.CheckHomogeneous(values); err != nil {
		return nil, fmt.Errorf("encoder values: %w", err)
	}

	e := &Encoder{
		pairs:   slices.Clone(pairs),
		forward: make(map[label.Value]label.Value, len(pairs)),
		inverse: make(map[label.Value]label.Value, len(pairs)),
	}
	for _, p := range pairs {
		if prev, dup := e.forward[p.Key]; dup {
			return nil, fmt.Errorf("%w: key %s mapped to both %s and %s", ErrNotBijective, p.Key, prev, p.Value)
		}
		if prev, dup := e.inverse[p.Value]; dup {
			return nil, fmt.Errorf("%w: value %s shared by keys %s and %s", ErrNotBijective, p.Value, prev, p.Key)
		}
		e.forward[p.Key] = p.Value
		e.inverse[p.Value] = p.Key
	}

	slices.SortFunc(e.pairs, func(a, b Pair) int {
		c, _ := label.Compare(a.Key, b.Key)
		return c
	})
	return e, nil
}

// FromLabels assigns ids 0..n-1 to the distinct labels in natural sort order.
//
// The input order does not matter, so the same population always yields the
// same assignment.
func FromLabels(labels []label.Value) (*Encoder, error) {
	sorted, err := label.NewSet(labels...).Sorted()
	if err != nil {
		return nil, err
	}
	if len(sorted) == 0 {
		return nil, ErrEmptyCatalog
	}

	pairs := make([]Pair, len(sorted))
	for i, l := range sorted {
		pairs[i] = Pair{Key: l, Value: label.Int(int64(i))}
	}
	return New(pairs)
}

// Len returns the number of distinct labels.
func (e *Encoder) Len() int { return len(e.pairs) }

// Lookup maps v in the given direction.
func (e *Encoder) Lookup(v label.Value, dir Direction) (label.Value, bool) {
	m := e.forward
	if dir == Inverse {
		m = e.inverse
	}
	out, ok := m[v]
	return out, ok
}

// Pairs returns the mapping sorted by raw label.
func (e *Encoder) Pairs() []Pair {
	return slices.Clone(e.pairs)
}

// Map returns a copy of the mapping in the given direction.
func (e *Encoder) Map(dir Direction) map[label.Value]label.Value {
	if dir == Inverse {
		return maps.Clone(e.inverse)
	}
	return maps.Clone(e.forward)
}

// KeyTags returns the type tag of every key, indexed by the key's text form.
func (e *Encoder) KeyTags() map[string]string {
	tags := make(map[string]string, len(e.pairs))
	for _, p := range e.pairs {
		tags[p.Key.String()] = string(p.Key.Tag())
	}
	return tags
}

// ValueTags returns the type tag of every value, indexed by the value's text form.
func (e *Encoder) ValueTags() map[string]string {
	tags := make(map[string]string, len(e.pairs))
	for _, p := range e.pairs {
		tags[p.Value.String()] = string(p.Value.Tag())
	}
	return tags
}

// IDs returns the encoded values as a bitmap.
// It fails if any value is not a non-negative integer that fits in 32 bits.
func (e *Encoder) IDs() (*roaring.Bitmap, error) {
	bm := roaring.New()
	for _, p := range e.pairs {
		id, ok := p.Value.AsInt64()
		if !ok {
			return nil, fmt.Errorf("encoded value %s is not an integer id", p.Value)
		}
		u, err := conv.Int64ToUint32(id)
		if err != nil {
			return nil, fmt.Errorf("encoded value %s: %w", p.Value, err)
		}
		bm.Add(u)
	}
	return bm, nil
}

// Dense reports whether the encoded values are exactly the ids 0..n-1.
func (e *Encoder) Dense() bool {
	bm, err := e.IDs()
	if err != nil {
		return false
	}
	n := uint64(e.Len())
	if bm.GetCardinality() != n {
		return false
	}
	return n == 0 || uint64(bm.Maximum()) == n-1
}

// Equal reports whether e and other hold the same mapping, including kinds.
func (e *Encoder) Equal(other *Encoder) bool {
	if e == nil || other == nil {
		return e == other
	}
	return maps.Equal(e.forward, other.forward)
}
