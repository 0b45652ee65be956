package encoder

import (
	"context"

	"github.com/hupe1980/labeltransform/dataset"
	"github.com/hupe1980/labeltransform/label"
)

// DiscoverTraining scans the label field of every record and builds an encoder
// over the distinct labels.
func DiscoverTraining(ctx context.Context, d *dataset.TrainingDataset) (*Encoder, error) {
	return discover(ctx, d, func(r dataset.TrainingRecord) []label.Value {
		return []label.Value{r.Label}
	})
}

// DiscoverPredictions builds an encoder over the union of true labels,
// predicted labels and every predicted detail key.
func DiscoverPredictions(ctx context.Context, d *dataset.PredictionDataset) (*Encoder, error) {
	return discover(ctx, d, dataset.PredictionResult.Labels)
}

// Catalog returns the distinct labels of d, sorted.
// Partial sets are computed per partition and merged by union.
func Catalog[T any](ctx context.Context, d *dataset.Dataset[T], labelsOf func(T) []label.Value) ([]label.Value, error) {
	set, err := dataset.Fold(ctx, d,
		func() label.Set { return label.NewSet() },
		func(s label.Set, v T) (label.Set, error) {
			for _, l := range labelsOf(v) {
				s.Add(l)
			}
			return s, nil
		},
		label.Set.Union,
	)
	if err != nil {
		return nil, err
	}
	return set.Sorted()
}

func discover[T any](ctx context.Context, d *dataset.Dataset[T], labelsOf func(T) []label.Value) (*Encoder, error) {
	labels, err := Catalog(ctx, d, labelsOf)
	if err != nil {
		return nil, err
	}
	return FromLabels(labels)
}
