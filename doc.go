// Package labeltransform maps raw class labels to dense integer ids and back.
//
// Training pipelines want labels as ids 0..n-1; people want to read
// predictions in the original label domain. A label transform sits between
// the two: it encodes the label field of training records and decodes the
// true label, predicted label and per-label scores of prediction results.
//
// # Quick Start
//
//	t, _ := labeltransform.New(labeltransform.DefaultConfig())
//
//	// Discover {"cat", "dog", "fish"} -> {0, 1, 2} and encode the training set.
//	model, encoded, _ := t.FitTraining(ctx, training)
//
//	// Later: present inference output with the original labels.
//	readable, _ := model.TransformPredictions(ctx, predictions)
//
// # Lifecycle
//
// A Transformer is only configuration. It becomes a Model in one of three ways:
//
//	t.FitTraining / t.FitPredictions  // encoder discovered from data
//	t.Configured()                    // encoder taken from Config.LabelEncoder
//	labeltransform.Load(bundle)       // encoder rebuilt from an exported artifact
//
// Only a Model can transform or export, and its encoder never changes.
//
// # Direction
//
// Training datasets are always transformed forward (raw label to id).
// Prediction datasets are always transformed inverse (id to raw label), both
// at fit time and afterwards. A label missing from the active direction fails
// the whole call with *ErrUnmappedLabel; nothing is passed through unchanged.
//
// # Persistence
//
//	b, _ := model.Export()                     // artifact.Bundle
//	store := artifact.NewStore(blobstore.NewLocalStore("./models"))
//	version, _ := model.Save(ctx, store, "species")
//	model, _ = labeltransform.Open(ctx, store, "species")
//
// Every key and value is persisted in text form with a type tag, so integer,
// unsigned, float and text labels come back with their exact type.
//
// # Observability
//
// Each successful transform emits one Event named "label_transform" in
// namespace "train" with the encoder contents. See MetricsCollector and
// package prommetrics.
package labeltransform
