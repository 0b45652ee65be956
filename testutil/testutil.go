package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/labeltransform/label"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Zipf returns a value in [0, n) following a Zipfian distribution.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
// Real label populations are usually skewed like this.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// TextLabels draws n text labels from distinct candidates ("class-00", ...).
func (r *RNG) TextLabels(n, distinct int) []label.Value {
	return r.draw(n, distinct, func(i int) label.Value {
		return label.String(fmt.Sprintf("class-%02d", i))
	})
}

// IntLabels draws n signed integer labels from distinct candidates centred on zero.
func (r *RNG) IntLabels(n, distinct int) []label.Value {
	return r.draw(n, distinct, func(i int) label.Value {
		return label.Int(int64(i - distinct/2))
	})
}

// UintLabels draws n unsigned integer labels from distinct candidates.
func (r *RNG) UintLabels(n, distinct int) []label.Value {
	return r.draw(n, distinct, func(i int) label.Value {
		return label.Uint(uint64(i) * 1000)
	})
}

// FloatLabels draws n float labels from distinct candidates.
// Candidates are chosen to have long decimal expansions.
func (r *RNG) FloatLabels(n, distinct int) []label.Value {
	return r.draw(n, distinct, func(i int) label.Value {
		return label.Float(float64(i)/3 - 1.1)
	})
}

func (r *RNG) draw(n, distinct int, candidate func(int) label.Value) []label.Value {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]label.Value, n)
	for i := range out {
		out[i] = candidate(r.zipfLocked(distinct, 1.0))
	}
	return out
}

// Shuffled returns a shuffled copy of values.
func (r *RNG) Shuffled(values []label.Value) []label.Value {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := slices.Clone(values)
	r.rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Keys returns n distinct, ordered record keys.
func Keys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("id-%06d", i)
	}
	return keys
}
