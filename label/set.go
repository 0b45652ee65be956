package label

// Set is a set of distinct labels.
//
// Union is associative and commutative, so partial sets built by parallel
// workers can be merged in any order.
type Set map[Value]struct{}

// NewSet returns a set holding the given labels.
func NewSet(values ...Value) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v.
func (s Set) Add(v Value) {
	s[v] = struct{}{}
}

// Has reports whether v is in the set.
func (s Set) Has(v Value) bool {
	_, ok := s[v]
	return ok
}

// Union adds every element of other to s and returns s.
func (s Set) Union(other Set) Set {
	for v := range other {
		s[v] = struct{}{}
	}
	return s
}

// Sorted returns the elements in natural order.
func (s Set) Sorted() ([]Value, error) {
	out := make([]Value, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	if err := Sort(out); err != nil {
		return nil, err
	}
	return out, nil
}
