package labeltransform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/labeltransform/artifact"
	"github.com/hupe1980/labeltransform/dataset"
	"github.com/hupe1980/labeltransform/encoder"
	"github.com/hupe1980/labeltransform/label"
)

// Origin records how a Model got its encoder.
type Origin int

const (
	// OriginFitted models discovered or adopted their encoder during a fit.
	OriginFitted Origin = iota
	// OriginConfigured models use the encoder from the configuration.
	OriginConfigured
	// OriginLoaded models were rebuilt from an exported artifact.
	OriginLoaded
)

func (o Origin) String() string {
	switch o {
	case OriginFitted:
		return "fitted"
	case OriginConfigured:
		return "configured"
	case OriginLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// Model is a label transform with an encoder, ready to transform and export.
//
// Models are immutable and safe for concurrent use.
type Model struct {
	enc       *encoder.Encoder
	needRun   bool
	labelName string
	origin    Origin
	opts      options
}

func newModel(enc *encoder.Encoder, cfg Config, origin Origin, opts options) *Model {
	return &Model{
		enc:       enc,
		needRun:   cfg.NeedRun,
		labelName: cfg.LabelName,
		origin:    origin,
		opts:      opts,
	}
}

// Load rebuilds a model from an exported bundle.
// Any unknown or missing type tag fails the load as a whole.
func Load(b artifact.Bundle, optFns ...Option) (*Model, error) {
	o := applyOptions(optFns)
	start := time.Now()

	needRun, enc, err := artifact.Decode(b)
	labels := 0
	if enc != nil {
		labels = enc.Len()
	}
	o.logger.LogLoad(context.Background(), labels, needRun, err)
	o.metricsCollector.RecordLoad(time.Since(start), err)
	if errors.Is(err, encoder.ErrEmptyCatalog) {
		return nil, fmt.Errorf("load label transform: %w: %w", ErrNoEncoder, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load label transform: %w", err)
	}

	return &Model{enc: enc, needRun: needRun, origin: OriginLoaded, opts: o}, nil
}

// Open loads the current version of a named model from a store.
func Open(ctx context.Context, store *artifact.Store, name string, optFns ...Option) (*Model, error) {
	b, _, err := store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return Load(b, optFns...)
}

// Encoder returns the encoder of the model.
func (m *Model) Encoder() *encoder.Encoder {
	if m == nil {
		return nil
	}
	return m.enc
}

// NeedRun reports the persisted execution flag.
func (m *Model) NeedRun() bool { return m != nil && m.needRun }

// Origin reports how the model got its encoder.
// A nil model reports OriginFitted.
func (m *Model) Origin() Origin {
	if m == nil {
		return OriginFitted
	}
	return m.origin
}

func (m *Model) ready() error {
	if m == nil || m.enc == nil || m.enc.Len() == 0 {
		return ErrNoEncoder
	}
	return nil
}

// Export returns the persisted form of the model.
func (m *Model) Export() (artifact.Bundle, error) {
	if err := m.ready(); err != nil {
		return artifact.Bundle{}, err
	}
	b := artifact.Export(m.needRun, m.enc)
	m.opts.logger.LogExport(context.Background(), m.enc.Len(), nil)
	return b, nil
}

// Save exports the model and stores it as a new version of name.
func (m *Model) Save(ctx context.Context, store *artifact.Store, name string) (uint64, error) {
	b, err := m.Export()
	if err != nil {
		return 0, err
	}
	v, err := store.Save(ctx, name, b)
	if err != nil {
		m.opts.logger.LogExport(ctx, m.enc.Len(), err)
		return 0, err
	}
	return v, nil
}

// TransformTraining rewrites the label of every record forward, from raw
// label to encoded id. Features, weight and sample id are copied unchanged.
//
// A label without a mapping fails the whole call with *ErrUnmappedLabel and
// no dataset is returned.
func (m *Model) TransformTraining(ctx context.Context, d *dataset.TrainingDataset) (*dataset.TrainingDataset, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}

	fwd := m.enc.Map(encoder.Forward)
	out, err := transform(ctx, m, KindTraining, encoder.Forward, d, func(r dataset.TrainingRecord) (dataset.TrainingRecord, error) {
		l, err := lookup(fwd, r.Label, encoder.Forward)
		if err != nil {
			return dataset.TrainingRecord{}, err
		}
		r = r.Clone()
		r.Label = l
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	if m.labelName != "" {
		out.Schema.LabelName = m.labelName
	}
	return out, nil
}

// TransformPredictions rewrites every prediction inverse, from encoded id back
// to raw label. The true label, the predicted label and each detail key are
// remapped; scores are left untouched.
//
// A label without a mapping fails the whole call with *ErrUnmappedLabel and
// no dataset is returned.
func (m *Model) TransformPredictions(ctx context.Context, d *dataset.PredictionDataset) (*dataset.PredictionDataset, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}

	inv := m.enc.Map(encoder.Inverse)
	return transform(ctx, m, KindPrediction, encoder.Inverse, d, func(p dataset.PredictionResult) (dataset.PredictionResult, error) {
		var err error
		out := dataset.PredictionResult{PredictedScore: p.PredictedScore}
		if out.TrueLabel, err = lookup(inv, p.TrueLabel, encoder.Inverse); err != nil {
			return dataset.PredictionResult{}, err
		}
		if out.PredictedLabel, err = lookup(inv, p.PredictedLabel, encoder.Inverse); err != nil {
			return dataset.PredictionResult{}, err
		}
		if p.PredictedDetail != nil {
			out.PredictedDetail = make(map[label.Value]float64, len(p.PredictedDetail))
			for l, score := range p.PredictedDetail {
				k, err := lookup(inv, l, encoder.Inverse)
				if err != nil {
					return dataset.PredictionResult{}, err
				}
				out.PredictedDetail[k] = score
			}
		}
		return out, nil
	})
}

func lookup(m map[label.Value]label.Value, l label.Value, dir encoder.Direction) (label.Value, error) {
	v, ok := m[l]
	if !ok {
		return label.Value{}, &ErrUnmappedLabel{Label: l, Direction: dir}
	}
	return v, nil
}

func transform[T any](ctx context.Context, m *Model, kind RecordKind, dir encoder.Direction, d *dataset.Dataset[T], f func(T) (T, error)) (*dataset.Dataset[T], error) {
	start := time.Now()

	out, err := dataset.MapValues(ctx, withController(m.opts, d), f)

	records := d.Count()
	m.opts.logger.LogTransform(ctx, kind, dir, records, err)
	m.opts.metricsCollector.RecordTransform(kind, records, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	out.Schema = d.Schema.Clone()
	m.opts.metricsCollector.EmitEncoder(newEvent(m.enc))
	return out, nil
}

func withController[T any](o options, d *dataset.Dataset[T]) *dataset.Dataset[T] {
	if o.controller == nil {
		return d
	}
	return d.WithController(o.controller)
}
