package encoder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/labeltransform/dataset"
	"github.com/hupe1980/labeltransform/label"
	"github.com/hupe1980/labeltransform/testutil"
)

func TestFromLabels_SortedDense(t *testing.T) {
	enc, err := FromLabels([]label.Value{
		label.String("fish"), label.String("cat"), label.String("dog"), label.String("cat"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, enc.Len())
	assert.True(t, enc.Dense())
	assert.Equal(t, []Pair{
		{label.String("cat"), label.Int(0)},
		{label.String("dog"), label.Int(1)},
		{label.String("fish"), label.Int(2)},
	}, enc.Pairs())

	v, ok := enc.Lookup(label.String("dog"), Forward)
	require.True(t, ok)
	assert.Equal(t, label.Int(1), v)

	v, ok = enc.Lookup(label.Int(2), Inverse)
	require.True(t, ok)
	assert.Equal(t, label.String("fish"), v)

	_, ok = enc.Lookup(label.String("cow"), Forward)
	assert.False(t, ok)
}

func TestFromLabels_NumericOrder(t *testing.T) {
	enc, err := FromLabels([]label.Value{label.Int(10), label.Int(-2), label.Int(3)})
	require.NoError(t, err)

	v, _ := enc.Lookup(label.Int(-2), Forward)
	assert.Equal(t, label.Int(0), v)
	v, _ = enc.Lookup(label.Int(10), Forward)
	assert.Equal(t, label.Int(2), v)
}

func TestFromLabels_Errors(t *testing.T) {
	_, err := FromLabels(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = FromLabels([]label.Value{label.Int(1), label.String("a")})
	var mk *label.ErrMixedKinds
	assert.ErrorAs(t, err, &mk)
}

func TestNew_NotBijective(t *testing.T) {
	_, err := New([]Pair{
		{label.String("a"), label.Int(0)},
		{label.String("b"), label.Int(0)},
	})
	assert.ErrorIs(t, err, ErrNotBijective)

	_, err = New([]Pair{
		{label.String("a"), label.Int(0)},
		{label.String("a"), label.Int(1)},
	})
	assert.ErrorIs(t, err, ErrNotBijective)
}

func TestDense(t *testing.T) {
	sparse, err := New([]Pair{
		{label.String("a"), label.Int(0)},
		{label.String("b"), label.Int(5)},
	})
	require.NoError(t, err)
	assert.False(t, sparse.Dense())

	text, err := New([]Pair{{label.Int(1), label.String("one")}})
	require.NoError(t, err)
	assert.False(t, text.Dense())
	_, err = text.IDs()
	assert.Error(t, err)
}

func TestTags(t *testing.T) {
	enc, err := FromLabels([]label.Value{label.Float(0.5), label.Float(1.5)})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"0.5": "float", "1.5": "float"}, enc.KeyTags())
	assert.Equal(t, map[string]string{"0": "int", "1": "int"}, enc.ValueTags())
}

func TestFromConfig(t *testing.T) {
	t.Run("text keys", func(t *testing.T) {
		enc, err := FromConfig(map[string]any{"yes": 1, "no": 0}, nil)
		require.NoError(t, err)
		v, ok := enc.Lookup(label.String("yes"), Forward)
		require.True(t, ok)
		assert.Equal(t, label.Int(1), v)
	})

	t.Run("label list types keys", func(t *testing.T) {
		enc, err := FromConfig(map[string]any{"-1": 0, "1": 1}, []any{-1, 1})
		require.NoError(t, err)
		v, ok := enc.Lookup(label.Int(-1), Forward)
		require.True(t, ok)
		assert.Equal(t, label.Int(0), v)

		_, ok = enc.Lookup(label.String("-1"), Forward)
		assert.False(t, ok)
	})

	t.Run("label list float keys", func(t *testing.T) {
		enc, err := FromConfig(map[string]any{"1.0": 0, "2.5": 1}, []any{1.0, 2.5})
		require.NoError(t, err)

		v, ok := enc.Lookup(label.Float(1), Forward)
		require.True(t, ok)
		assert.Equal(t, label.Int(0), v)

		v, ok = enc.Lookup(label.Float(2.5), Forward)
		require.True(t, ok)
		assert.Equal(t, label.Int(1), v)

		assert.Equal(t, map[string]string{"1": "float", "2.5": "float"}, enc.KeyTags())
	})

	t.Run("label list int rejects float text", func(t *testing.T) {
		_, err := FromConfig(map[string]any{"1.0": 0}, []any{1})
		assert.ErrorIs(t, err, ErrLabelListMismatch)
	})

	t.Run("empty mapping", func(t *testing.T) {
		_, err := FromConfig(map[string]any{}, nil)
		assert.ErrorIs(t, err, ErrEmptyCatalog)

		_, err = FromConfig(map[string]any{}, []any{1, 2})
		assert.ErrorIs(t, err, ErrEmptyCatalog)
	})

	t.Run("label list mismatch", func(t *testing.T) {
		_, err := FromConfig(map[string]any{"2": 0}, []any{1})
		assert.ErrorIs(t, err, ErrLabelListMismatch)
	})

	t.Run("mixed values", func(t *testing.T) {
		_, err := FromConfig(map[string]any{"a": 0, "b": "x"}, nil)
		var mk *label.ErrMixedKinds
		assert.ErrorAs(t, err, &mk)
	})
}

func TestDiscoverTraining_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(7)
	labels := rng.TextLabels(500, 12)
	want, err := FromLabels(labels)
	require.NoError(t, err)

	for parts := 1; parts <= 8; parts++ {
		shuffled := rng.Shuffled(labels)
		records := make([]dataset.TrainingRecord, len(shuffled))
		for i, l := range shuffled {
			records[i] = dataset.TrainingRecord{Label: l}
		}
		d, err := dataset.FromSlice(testutil.Keys(len(records)), records, parts)
		require.NoError(t, err)

		got, err := DiscoverTraining(context.Background(), d)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "partitions=%d", parts)
		assert.True(t, got.Dense())
	}
}

func TestDiscoverPredictions_Union(t *testing.T) {
	results := []dataset.PredictionResult{
		{
			TrueLabel:      label.Int(1),
			PredictedLabel: label.Int(1),
			PredictedDetail: map[label.Value]float64{
				label.Int(1): 0.7, label.Int(4): 0.3,
			},
		},
		{
			TrueLabel:       label.Int(9),
			PredictedLabel:  label.Int(2),
			PredictedDetail: map[label.Value]float64{label.Int(2): 1},
		},
	}
	d, err := dataset.FromSlice([]string{"a", "b"}, results, 2)
	require.NoError(t, err)

	enc, err := DiscoverPredictions(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{label.Int(1), label.Int(0)},
		{label.Int(2), label.Int(1)},
		{label.Int(4), label.Int(2)},
		{label.Int(9), label.Int(3)},
	}, enc.Pairs())
}

func TestDiscover_MixedKindsFailFast(t *testing.T) {
	records := []dataset.TrainingRecord{{Label: label.Int(1)}, {Label: label.String("1")}}
	d, err := dataset.FromSlice([]string{"a", "b"}, records, 2)
	require.NoError(t, err)

	_, err = DiscoverTraining(context.Background(), d)
	var mk *label.ErrMixedKinds
	assert.ErrorAs(t, err, &mk)
}

func TestEqual(t *testing.T) {
	a, err := FromLabels([]label.Value{label.Int(1), label.Int(2)})
	require.NoError(t, err)
	b, err := FromLabels([]label.Value{label.Uint(1), label.Uint(2)})
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))

	var n *Encoder
	assert.False(t, a.Equal(n))
	assert.True(t, n.Equal(nil))
}
