package labeltransform_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/labeltransform"
	"github.com/hupe1980/labeltransform/dataset"
	"github.com/hupe1980/labeltransform/encoder"
	"github.com/hupe1980/labeltransform/label"
	"github.com/hupe1980/labeltransform/resource"
	"github.com/hupe1980/labeltransform/testutil"
)

func trainingSet(t *testing.T, partitions int, labels ...label.Value) *dataset.TrainingDataset {
	t.Helper()
	records := make([]dataset.TrainingRecord, len(labels))
	for i, l := range labels {
		records[i] = dataset.TrainingRecord{
			Label:    l,
			Features: []float64{float64(i), 1},
			Weight:   1,
			SID:      fmt.Sprintf("s%d", i),
		}
	}
	d, err := dataset.FromSlice(testutil.Keys(len(records)), records, partitions)
	require.NoError(t, err)
	d.Schema = dataset.Schema{Header: []string{"x0", "x1"}, LabelName: "y", SIDName: "sid"}
	return d
}

func predictionSet(t *testing.T, results ...dataset.PredictionResult) *dataset.PredictionDataset {
	t.Helper()
	d, err := dataset.FromSlice(testutil.Keys(len(results)), results, 2)
	require.NoError(t, err)
	d.Schema = dataset.Schema{Header: []string{"true_label", "predict_result", "predict_score", "predict_detail"}}
	return d
}

func text(values ...string) []label.Value {
	out := make([]label.Value, len(values))
	for i, v := range values {
		out[i] = label.String(v)
	}
	return out
}

func labelsOf(d *dataset.TrainingDataset) []label.Value {
	_, records := d.Collect()
	out := make([]label.Value, len(records))
	for i, r := range records {
		out[i] = r.Label
	}
	return out
}

func TestWorkedExample(t *testing.T) {
	ctx := context.Background()

	tr, err := labeltransform.New(labeltransform.DefaultConfig())
	require.NoError(t, err)

	model, encoded, err := tr.FitTraining(ctx, trainingSet(t, 2, text("fish", "dog", "cat", "dog")...))
	require.NoError(t, err)
	assert.Equal(t, labeltransform.OriginFitted, model.Origin())

	assert.Equal(t, []encoder.Pair{
		{Key: label.String("cat"), Value: label.Int(0)},
		{Key: label.String("dog"), Value: label.Int(1)},
		{Key: label.String("fish"), Value: label.Int(2)},
	}, model.Encoder().Pairs())
	assert.Equal(t, []label.Value{label.Int(2), label.Int(1), label.Int(0), label.Int(1)}, labelsOf(encoded))

	readable, err := model.TransformPredictions(ctx, predictionSet(t, dataset.PredictionResult{
		TrueLabel:      label.Int(2),
		PredictedLabel: label.Int(0),
		PredictedScore: 0.9,
		PredictedDetail: map[label.Value]float64{
			label.Int(0): 0.9,
			label.Int(1): 0.05,
			label.Int(2): 0.05,
		},
	}))
	require.NoError(t, err)

	_, results := readable.Collect()
	require.Len(t, results, 1)
	assert.Equal(t, dataset.PredictionResult{
		TrueLabel:      label.String("fish"),
		PredictedLabel: label.String("cat"),
		PredictedScore: 0.9,
		PredictedDetail: map[label.Value]float64{
			label.String("cat"):  0.9,
			label.String("dog"):  0.05,
			label.String("fish"): 0.05,
		},
	}, results[0])
}

func TestFitTraining_PreservesRecordsAndLayout(t *testing.T) {
	ctx := context.Background()
	in := trainingSet(t, 3, label.Int(30), label.Int(10), label.Int(20), label.Int(10), label.Int(30))

	tr, err := labeltransform.New(labeltransform.DefaultConfig())
	require.NoError(t, err)
	_, out, err := tr.FitTraining(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, in.NumPartitions(), out.NumPartitions())
	assert.Equal(t, in.Schema, out.Schema)

	inKeys, inRecords := in.Collect()
	outKeys, outRecords := out.Collect()
	assert.Equal(t, inKeys, outKeys)
	for i := range inRecords {
		assert.Equal(t, inRecords[i].Features, outRecords[i].Features)
		assert.Equal(t, inRecords[i].SID, outRecords[i].SID)
		assert.Equal(t, inRecords[i].Weight, outRecords[i].Weight)
	}
	assert.Equal(t, []label.Value{label.Int(2), label.Int(0), label.Int(1), label.Int(0), label.Int(2)}, labelsOf(out))

	// The input is never modified.
	assert.Equal(t, label.Int(30), inRecords[0].Label)
	outRecords[0].Features[0] = 99
	assert.Equal(t, 0.0, inRecords[0].Features[0])
}

func TestFit_Deterministic(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(42)
	population := rng.TextLabels(2000, 37)

	tr, err := labeltransform.New(labeltransform.DefaultConfig())
	require.NoError(t, err)

	var first *encoder.Encoder
	for _, parts := range []int{1, 3, 8, 64} {
		model, _, err := tr.FitTraining(ctx, trainingSet(t, parts, rng.Shuffled(population)...))
		require.NoError(t, err)
		assert.True(t, model.Encoder().Dense())
		if first == nil {
			first = model.Encoder()
			continue
		}
		assert.True(t, first.Equal(model.Encoder()), "partitions=%d", parts)
	}
}

func TestFit_MixedKindsFail(t *testing.T) {
	tr, err := labeltransform.New(labeltransform.DefaultConfig())
	require.NoError(t, err)

	_, _, err = tr.FitTraining(context.Background(), trainingSet(t, 2, label.Int(1), label.String("1")))
	var mixed *label.ErrMixedKinds
	assert.ErrorAs(t, err, &mixed)
}

func TestFit_EmptyDataset(t *testing.T) {
	tr, err := labeltransform.New(labeltransform.DefaultConfig())
	require.NoError(t, err)

	_, _, err = tr.FitTraining(context.Background(), trainingSet(t, 2))
	assert.ErrorIs(t, err, encoder.ErrEmptyCatalog)
}

func TestFitPredictions_Inverse(t *testing.T) {
	ctx := context.Background()

	// Inference output carries encoded ids; discovery over them yields the
	// identity and the inverse transform leaves them in place.
	in := predictionSet(t,
		dataset.PredictionResult{TrueLabel: label.Int(1), PredictedLabel: label.Int(0), PredictedScore: 0.7,
			PredictedDetail: map[label.Value]float64{label.Int(0): 0.7, label.Int(2): 0.3}},
		dataset.PredictionResult{TrueLabel: label.Int(2), PredictedLabel: label.Int(2), PredictedScore: 0.6},
	)

	tr, err := labeltransform.New(labeltransform.DefaultConfig())
	require.NoError(t, err)
	model, out, err := tr.FitPredictions(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 3, model.Encoder().Len())

	_, want := in.Collect()
	_, got := out.Collect()
	assert.Equal(t, want, got)
	assert.Equal(t, in.Schema, out.Schema)
}

func TestConfigured(t *testing.T) {
	ctx := context.Background()
	cfg := labeltransform.Config{
		NeedRun:      true,
		LabelEncoder: map[string]any{"yes": 1, "no": 0},
		LabelName:    "target",
	}

	tr, err := labeltransform.New(cfg)
	require.NoError(t, err)
	model, err := tr.Configured()
	require.NoError(t, err)
	assert.Equal(t, labeltransform.OriginConfigured, model.Origin())

	out, err := model.TransformTraining(ctx, trainingSet(t, 1, text("yes", "no", "yes")...))
	require.NoError(t, err)
	assert.Equal(t, []label.Value{label.Int(1), label.Int(0), label.Int(1)}, labelsOf(out))
	assert.Equal(t, "target", out.Schema.LabelName)

	// A supplied encoder is used as-is at fit time; no discovery happens.
	fitted, _, err := tr.FitTraining(ctx, trainingSet(t, 1, text("no")...))
	require.NoError(t, err)
	assert.True(t, model.Encoder().Equal(fitted.Encoder()))
}

func TestConfigured_LabelListTypesKeys(t *testing.T) {
	cfg := labeltransform.Config{
		LabelEncoder: map[string]any{"-1": 0, "1": 1},
		LabelList:    []any{-1, 1},
	}

	tr, err := labeltransform.New(cfg)
	require.NoError(t, err)
	model, err := tr.Configured()
	require.NoError(t, err)

	v, ok := model.Encoder().Lookup(label.Int(-1), encoder.Forward)
	require.True(t, ok)
	assert.Equal(t, label.Int(0), v)
}

func TestNew_InvalidEncoder(t *testing.T) {
	_, err := labeltransform.New(labeltransform.Config{
		LabelEncoder: map[string]any{"a": 0, "b": 0},
	})
	assert.ErrorIs(t, err, encoder.ErrNotBijective)

	_, err = labeltransform.New(labeltransform.Config{
		LabelEncoder: map[string]any{"a": 0, "b": 1},
		LabelList:    []any{"a"},
	})
	assert.ErrorIs(t, err, encoder.ErrLabelListMismatch)
}

func TestConfigured_NoEncoder(t *testing.T) {
	tr, err := labeltransform.New(labeltransform.DefaultConfig())
	require.NoError(t, err)

	_, err = tr.Configured()
	assert.ErrorIs(t, err, labeltransform.ErrNoEncoder)
}

func TestNew_EmptyEncoder(t *testing.T) {
	_, err := labeltransform.New(labeltransform.Config{LabelEncoder: map[string]any{}})
	assert.ErrorIs(t, err, labeltransform.ErrNoEncoder)
	assert.ErrorIs(t, err, encoder.ErrEmptyCatalog)
}

func TestNilModel(t *testing.T) {
	var m *labeltransform.Model
	ctx := context.Background()

	_, err := m.TransformTraining(ctx, trainingSet(t, 1, label.Int(1)))
	assert.ErrorIs(t, err, labeltransform.ErrNoEncoder)

	_, err = m.TransformPredictions(ctx, predictionSet(t))
	assert.ErrorIs(t, err, labeltransform.ErrNoEncoder)

	_, err = m.Export()
	assert.ErrorIs(t, err, labeltransform.ErrNoEncoder)
	assert.False(t, m.NeedRun())
	assert.Nil(t, m.Encoder())
	assert.NotPanics(t, func() { _ = m.Origin() })
	assert.Equal(t, labeltransform.OriginFitted, m.Origin())
}

func TestTransform_UnmappedLabel(t *testing.T) {
	ctx := context.Background()
	tr, err := labeltransform.New(labeltransform.Config{LabelEncoder: map[string]any{"a": 0, "b": 1}})
	require.NoError(t, err)
	model, err := tr.Configured()
	require.NoError(t, err)

	t.Run("Training", func(t *testing.T) {
		out, err := model.TransformTraining(ctx, trainingSet(t, 4, text("a", "b", "c", "a", "b")...))
		assert.Nil(t, out)

		var unmapped *labeltransform.ErrUnmappedLabel
		require.ErrorAs(t, err, &unmapped)
		assert.Equal(t, label.String("c"), unmapped.Label)
		assert.Equal(t, encoder.Forward, unmapped.Direction)
	})

	t.Run("PredictionDetail", func(t *testing.T) {
		out, err := model.TransformPredictions(ctx, predictionSet(t, dataset.PredictionResult{
			TrueLabel:       label.Int(0),
			PredictedLabel:  label.Int(1),
			PredictedDetail: map[label.Value]float64{label.Int(0): 0.5, label.Int(7): 0.5},
		}))
		assert.Nil(t, out)

		var unmapped *labeltransform.ErrUnmappedLabel
		require.ErrorAs(t, err, &unmapped)
		assert.Equal(t, label.Int(7), unmapped.Label)
		assert.Equal(t, encoder.Inverse, unmapped.Direction)
	})

	t.Run("KindsMustMatch", func(t *testing.T) {
		// Encoded ids are ints; a uint 0 is a different label.
		_, err := model.TransformPredictions(ctx, predictionSet(t, dataset.PredictionResult{
			TrueLabel:      label.Uint(0),
			PredictedLabel: label.Int(0),
		}))
		var unmapped *labeltransform.ErrUnmappedLabel
		assert.ErrorAs(t, err, &unmapped)
	})
}

func TestTransform_MetricsAndEvent(t *testing.T) {
	ctx := context.Background()
	metrics := &labeltransform.BasicMetricsCollector{}

	tr, err := labeltransform.New(labeltransform.DefaultConfig(), labeltransform.WithMetricsCollector(metrics))
	require.NoError(t, err)

	model, _, err := tr.FitTraining(ctx, trainingSet(t, 2, text("b", "a")...))
	require.NoError(t, err)
	_, err = model.TransformTraining(ctx, trainingSet(t, 2, text("z")...))
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.FitCount)
	assert.Equal(t, int64(2), stats.TransformCount)
	assert.Equal(t, int64(1), stats.TransformErrors)
	assert.Equal(t, int64(2), stats.TransformRecords)
	assert.Equal(t, int64(1), stats.EncoderEmissionCount)

	ev, ok := metrics.LastEvent()
	require.True(t, ok)
	assert.Equal(t, "label_transform", ev.Name)
	assert.Equal(t, "train", ev.Namespace)
	assert.Equal(t, "LABEL_TRANSFORM", ev.Type)
	assert.Equal(t, model.Encoder().Pairs(), ev.Pairs)
}

func TestTransform_WithController(t *testing.T) {
	ctx := context.Background()
	ctrl := resource.NewController(resource.Config{MaxWorkers: 1})

	tr, err := labeltransform.New(labeltransform.DefaultConfig(), labeltransform.WithController(ctrl))
	require.NoError(t, err)

	rng := testutil.NewRNG(7)
	_, out, err := tr.FitTraining(ctx, trainingSet(t, 16, rng.IntLabels(500, 9)...))
	require.NoError(t, err)
	assert.Equal(t, 500, out.Count())
	assert.Equal(t, int64(0), ctrl.ActiveWorkers())
}

func TestTransform_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr, err := labeltransform.New(labeltransform.Config{LabelEncoder: map[string]any{"a": 0}})
	require.NoError(t, err)
	model, err := tr.Configured()
	require.NoError(t, err)

	_, err = model.TransformTraining(ctx, trainingSet(t, 2, text("a", "a")...))
	assert.ErrorIs(t, err, context.Canceled)
}
