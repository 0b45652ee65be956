package dataset

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/labeltransform/resource"
)

// ErrPartitionShape is returned when a partition has mismatched keys and values.
var ErrPartitionShape = errors.New("partition keys and values differ in length")

// ctxCheckInterval is how many records a worker processes between context checks.
const ctxCheckInterval = 1024

// Schema describes the dataset columns. It is managed by the caller.
type Schema struct {
	Header    []string
	LabelName string
	SIDName   string
}

// Clone returns a deep copy of s.
func (s Schema) Clone() Schema {
	s.Header = slices.Clone(s.Header)
	return s
}

// Partition is a contiguous slice of keyed records.
type Partition[T any] struct {
	Keys   []string
	Values []T
}

// Len returns the number of records in the partition.
func (p Partition[T]) Len() int { return len(p.Values) }

// Dataset is an immutable, partitioned collection of keyed records.
type Dataset[T any] struct {
	// Schema is copied onto derived datasets by the caller, not by MapValues.
	Schema Schema

	partitions []Partition[T]
	controller *resource.Controller
}

// New creates a dataset from the given partitions.
func New[T any](partitions ...Partition[T]) (*Dataset[T], error) {
	for i, p := range partitions {
		if len(p.Keys) != len(p.Values) {
			return nil, fmt.Errorf("partition %d: %w (%d keys, %d values)", i, ErrPartitionShape, len(p.Keys), len(p.Values))
		}
	}
	return &Dataset[T]{partitions: partitions}, nil
}

// FromSlice splits keyed records into numPartitions contiguous partitions.
func FromSlice[T any](keys []string, values []T, numPartitions int) (*Dataset[T], error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w (%d keys, %d values)", ErrPartitionShape, len(keys), len(values))
	}
	if numPartitions <= 0 {
		numPartitions = 1
	}

	size := (len(values) + numPartitions - 1) / numPartitions
	if size == 0 {
		size = 1
	}

	parts := make([]Partition[T], 0, numPartitions)
	for start := 0; start < len(values); start += size {
		end := min(start+size, len(values))
		parts = append(parts, Partition[T]{
			Keys:   keys[start:end],
			Values: values[start:end],
		})
	}
	return New(parts...)
}

// WithController returns a shallow copy of d whose parallel operations draw
// worker slots from c.
func (d *Dataset[T]) WithController(c *resource.Controller) *Dataset[T] {
	out := *d
	out.controller = c
	return &out
}

// NumPartitions returns the number of partitions.
func (d *Dataset[T]) NumPartitions() int { return len(d.partitions) }

// Partition returns the i-th partition.
func (d *Dataset[T]) Partition(i int) Partition[T] { return d.partitions[i] }

// Count returns the total number of records.
func (d *Dataset[T]) Count() int {
	n := 0
	for _, p := range d.partitions {
		n += p.Len()
	}
	return n
}

// Sample returns one record of the dataset, or ok=false when it is empty.
func (d *Dataset[T]) Sample() (key string, value T, ok bool) {
	for _, p := range d.partitions {
		if p.Len() > 0 {
			return p.Keys[0], p.Values[0], true
		}
	}
	return "", value, false
}

// Collect returns all keys and values in partition order.
func (d *Dataset[T]) Collect() ([]string, []T) {
	n := d.Count()
	keys := make([]string, 0, n)
	values := make([]T, 0, n)
	for _, p := range d.partitions {
		keys = append(keys, p.Keys...)
		values = append(values, p.Values...)
	}
	return keys, values
}

// MapValues applies f to every record of d. See the package-level MapValues.
func (d *Dataset[T]) MapValues(ctx context.Context, f func(T) (T, error)) (*Dataset[T], error) {
	return MapValues(ctx, d, f)
}

// MapValues applies f to every value of d in parallel, one worker per partition.
//
// The output has the same keys and partitioning as d. The first error aborts
// the whole operation and no dataset is returned.
func MapValues[T, U any](ctx context.Context, d *Dataset[T], f func(T) (U, error)) (*Dataset[U], error) {
	out := make([]Partition[U], len(d.partitions))

	err := d.forEachPartition(ctx, func(ctx context.Context, i int, p Partition[T]) error {
		values := make([]U, len(p.Values))
		for j, v := range p.Values {
			if j%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			u, err := f(v)
			if err != nil {
				return fmt.Errorf("partition %d, key %q: %w", i, p.Keys[j], err)
			}
			values[j] = u
		}
		out[i] = Partition[U]{Keys: slices.Clone(p.Keys), Values: values}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Dataset[U]{partitions: out, controller: d.controller}, nil
}

// Fold reduces d in parallel.
//
// Each partition starts from zero() and folds its values with seq. The
// per-partition results are merged with comb, which must be associative and
// commutative since partitions finish in any order.
func Fold[T, A any](ctx context.Context, d *Dataset[T], zero func() A, seq func(A, T) (A, error), comb func(A, A) A) (A, error) {
	partials := make([]A, len(d.partitions))

	err := d.forEachPartition(ctx, func(ctx context.Context, i int, p Partition[T]) error {
		acc := zero()
		for j, v := range p.Values {
			if j%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			var err error
			if acc, err = seq(acc, v); err != nil {
				return fmt.Errorf("partition %d, key %q: %w", i, p.Keys[j], err)
			}
		}
		partials[i] = acc
		return nil
	})
	if err != nil {
		var none A
		return none, err
	}

	result := zero()
	for _, p := range partials {
		result = comb(result, p)
	}
	return result, nil
}

func (d *Dataset[T]) forEachPartition(ctx context.Context, fn func(ctx context.Context, i int, p Partition[T]) error) error {
	g, ctx := errgroup.WithContext(ctx)

	limit := runtime.GOMAXPROCS(0)
	if n := d.controller.MaxWorkers(); n > 0 {
		limit = n
	}
	g.SetLimit(limit)

	for i, p := range d.partitions {
		g.Go(func() error {
			if err := d.controller.AcquireWorker(ctx); err != nil {
				return err
			}
			defer d.controller.ReleaseWorker()
			return fn(ctx, i, p)
		})
	}

	return g.Wait()
}
