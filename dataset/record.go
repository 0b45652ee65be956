package dataset

import (
	"maps"
	"slices"

	"github.com/hupe1980/labeltransform/label"
)

// TrainingRecord is a labelled training instance.
type TrainingRecord struct {
	Label    label.Value
	Features []float64
	Weight   float64
	SID      string
}

// Clone returns a deep copy of r.
func (r TrainingRecord) Clone() TrainingRecord {
	r.Features = slices.Clone(r.Features)
	return r
}

// PredictionResult is one row of inference output.
//
// PredictedDetail maps every candidate label to its score.
type PredictionResult struct {
	TrueLabel       label.Value
	PredictedLabel  label.Value
	PredictedScore  float64
	PredictedDetail map[label.Value]float64
}

// Clone returns a deep copy of p.
func (p PredictionResult) Clone() PredictionResult {
	p.PredictedDetail = maps.Clone(p.PredictedDetail)
	return p
}

// Labels returns every label referenced by p: the true label, the predicted
// label and each detail key.
func (p PredictionResult) Labels() []label.Value {
	out := make([]label.Value, 0, 2+len(p.PredictedDetail))
	out = append(out, p.TrueLabel, p.PredictedLabel)
	for l := range p.PredictedDetail {
		out = append(out, l)
	}
	return out
}

// TrainingDataset is a dataset of training records.
type TrainingDataset = Dataset[TrainingRecord]

// PredictionDataset is a dataset of prediction results.
type PredictionDataset = Dataset[PredictionResult]
