package labeltransform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/labeltransform"
	"github.com/hupe1980/labeltransform/artifact"
	"github.com/hupe1980/labeltransform/blobstore"
	"github.com/hupe1980/labeltransform/dataset"
	"github.com/hupe1980/labeltransform/encoder"
	"github.com/hupe1980/labeltransform/label"
	"github.com/hupe1980/labeltransform/testutil"
)

func TestExportLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(1)

	populations := map[string][]label.Value{
		"int":   rng.IntLabels(300, 12),
		"uint":  rng.UintLabels(300, 12),
		"float": rng.FloatLabels(300, 12),
		"text":  rng.TextLabels(300, 12),
	}

	for name, population := range populations {
		t.Run(name, func(t *testing.T) {
			tr, err := labeltransform.New(labeltransform.Config{NeedRun: false})
			require.NoError(t, err)
			model, _, err := tr.FitTraining(ctx, trainingSet(t, 4, population...))
			require.NoError(t, err)

			b, err := model.Export()
			require.NoError(t, err)

			loaded, err := labeltransform.Load(b)
			require.NoError(t, err)
			assert.Equal(t, labeltransform.OriginLoaded, loaded.Origin())
			assert.False(t, loaded.NeedRun())
			assert.True(t, model.Encoder().Equal(loaded.Encoder()))

			// A loaded model transforms exactly like the fitted one.
			want, err := model.TransformTraining(ctx, trainingSet(t, 3, population...))
			require.NoError(t, err)
			got, err := loaded.TransformTraining(ctx, trainingSet(t, 3, population...))
			require.NoError(t, err)
			assert.Equal(t, labelsOf(want), labelsOf(got))
		})
	}
}

func TestLoad_UnknownTag(t *testing.T) {
	metrics := &labeltransform.BasicMetricsCollector{}
	b := artifact.Bundle{
		Meta: artifact.Meta{NeedRun: true},
		Param: artifact.Param{
			LabelEncoder:     map[string]string{"a": "0", "b": "1"},
			EncoderKeyType:   map[string]string{"a": "str", "b": "str"},
			EncoderValueType: map[string]string{"0": "int", "1": "decimal"},
		},
	}

	m, err := labeltransform.Load(b, labeltransform.WithMetricsCollector(metrics))
	assert.Nil(t, m)

	var tagErr *label.ErrUnknownTypeTag
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, "decimal", tagErr.Tag)
	assert.Equal(t, int64(1), metrics.GetStats().LoadErrors)
}

func TestLoad_EmptyBundle(t *testing.T) {
	metrics := &labeltransform.BasicMetricsCollector{}

	m, err := labeltransform.Load(artifact.Bundle{}, labeltransform.WithMetricsCollector(metrics))
	assert.Nil(t, m)
	assert.ErrorIs(t, err, labeltransform.ErrNoEncoder)
	assert.ErrorIs(t, err, encoder.ErrEmptyCatalog)
	assert.Equal(t, int64(1), metrics.GetStats().LoadErrors)

	_, err = m.TransformTraining(context.Background(), trainingSet(t, 1, label.Int(1)))
	assert.ErrorIs(t, err, labeltransform.ErrNoEncoder)
}

func TestLoad_TransformsPredictions(t *testing.T) {
	ctx := context.Background()
	b := artifact.Bundle{
		Meta: artifact.Meta{NeedRun: true},
		Param: artifact.Param{
			LabelEncoder:     map[string]string{"-1": "0", "1": "1"},
			EncoderKeyType:   map[string]string{"-1": "int64", "1": "int64"},
			EncoderValueType: map[string]string{"0": "int", "1": "int"},
		},
	}

	model, err := labeltransform.Load(b)
	require.NoError(t, err)
	assert.True(t, model.NeedRun())

	out, err := model.TransformPredictions(ctx, predictionSet(t, dataset.PredictionResult{
		TrueLabel:       label.Int(0),
		PredictedLabel:  label.Int(1),
		PredictedScore:  0.8,
		PredictedDetail: map[label.Value]float64{label.Int(0): 0.2, label.Int(1): 0.8},
	}))
	require.NoError(t, err)

	_, results := out.Collect()
	require.Len(t, results, 1)
	assert.Equal(t, label.Int(-1), results[0].TrueLabel)
	assert.Equal(t, label.Int(1), results[0].PredictedLabel)
	assert.Equal(t, 0.8, results[0].PredictedScore)
	assert.Equal(t, map[label.Value]float64{label.Int(-1): 0.2, label.Int(1): 0.8}, results[0].PredictedDetail)
}

func TestSaveOpen(t *testing.T) {
	ctx := context.Background()
	store := artifact.NewStore(blobstore.NewLocalStore(t.TempDir()))

	tr, err := labeltransform.New(labeltransform.DefaultConfig())
	require.NoError(t, err)
	model, _, err := tr.FitTraining(ctx, trainingSet(t, 2, text("x", "y", "z")...))
	require.NoError(t, err)

	v, err := model.Save(ctx, store, "letters")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	opened, err := labeltransform.Open(ctx, store, "letters")
	require.NoError(t, err)
	assert.True(t, model.Encoder().Equal(opened.Encoder()))
	assert.True(t, opened.NeedRun())

	_, err = labeltransform.Open(ctx, store, "missing")
	assert.ErrorIs(t, err, artifact.ErrNoModel)
}
