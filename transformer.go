package labeltransform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/labeltransform/dataset"
	"github.com/hupe1980/labeltransform/encoder"
)

// RecordKind names the two dataset shapes a transform handles.
type RecordKind string

const (
	// KindTraining is a dataset of dataset.TrainingRecord.
	KindTraining RecordKind = "training"
	// KindPrediction is a dataset of dataset.PredictionResult.
	KindPrediction RecordKind = "prediction"
)

// Transformer is a configured but not yet fitted label transform.
//
// It cannot transform data. Fit or Configured turn it into a Model.
type Transformer struct {
	cfg      Config
	supplied *encoder.Encoder
	opts     options
}

// New validates cfg and returns an unfitted transformer.
//
// An explicit cfg.LabelEncoder is built into an encoder here, so a bad mapping
// fails before any data is touched.
func New(cfg Config, optFns ...Option) (*Transformer, error) {
	o := applyOptions(optFns)

	t := &Transformer{cfg: cfg, opts: o}
	if cfg.LabelEncoder != nil {
		var labelList []any
		if cfg.LabelList != nil {
			o.logger.Info("label list provided", "labels", len(cfg.LabelList))
			labelList = cfg.LabelList
		}
		enc, err := encoder.FromConfig(cfg.LabelEncoder, labelList)
		if errors.Is(err, encoder.ErrEmptyCatalog) {
			return nil, fmt.Errorf("label encoder: %w: %w", ErrNoEncoder, err)
		}
		if err != nil {
			return nil, fmt.Errorf("label encoder: %w", err)
		}
		t.supplied = enc
	}
	if cfg.LabelName == "" {
		o.logger.Info("label name not set, keeping the schema label field")
	}
	return t, nil
}

// Configured returns a model over the supplied encoder without looking at any
// data. It fails with ErrNoEncoder when the configuration has none.
func (t *Transformer) Configured() (*Model, error) {
	if t.supplied == nil {
		return nil, ErrNoEncoder
	}
	return newModel(t.supplied, t.cfg, OriginConfigured, t.opts), nil
}

// FitTraining builds the encoder from a training dataset, unless one was
// supplied, and returns the model together with d transformed forward.
func (t *Transformer) FitTraining(ctx context.Context, d *dataset.TrainingDataset) (*Model, *dataset.TrainingDataset, error) {
	m, err := t.fit(ctx, KindTraining, func(ctx context.Context) (*encoder.Encoder, error) {
		return encoder.DiscoverTraining(ctx, withController(t.opts, d))
	})
	if err != nil {
		return nil, nil, err
	}

	out, err := m.TransformTraining(ctx, d)
	if err != nil {
		return nil, nil, err
	}
	return m, out, nil
}

// FitPredictions builds the encoder from a prediction dataset, unless one was
// supplied, and returns the model together with d transformed inverse.
func (t *Transformer) FitPredictions(ctx context.Context, d *dataset.PredictionDataset) (*Model, *dataset.PredictionDataset, error) {
	m, err := t.fit(ctx, KindPrediction, func(ctx context.Context) (*encoder.Encoder, error) {
		return encoder.DiscoverPredictions(ctx, withController(t.opts, d))
	})
	if err != nil {
		return nil, nil, err
	}

	out, err := m.TransformPredictions(ctx, d)
	if err != nil {
		return nil, nil, err
	}
	return m, out, nil
}

func (t *Transformer) fit(ctx context.Context, kind RecordKind, discover func(context.Context) (*encoder.Encoder, error)) (*Model, error) {
	start := time.Now()

	enc := t.supplied
	var err error
	if enc == nil {
		enc, err = discover(ctx)
	}

	labels := 0
	if enc != nil {
		labels = enc.Len()
	}
	t.opts.logger.LogFit(ctx, kind, t.supplied == nil, labels, err)
	t.opts.metricsCollector.RecordFit(kind, labels, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("discover %s labels: %w", kind, err)
	}

	return newModel(enc, t.cfg, OriginFitted, t.opts), nil
}
