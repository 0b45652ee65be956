// Package dataset provides the partitioned, keyed datasets labeltransform operates on.
//
// Two record shapes exist, each with its own dataset type so that callers never
// have to probe a record to find out what it is:
//
//   - TrainingDataset: records with a mutable label field.
//   - PredictionDataset: fixed (true, predicted, score, detail) inference output.
//
// MapValues applies a function to every record in parallel, one worker per
// partition, preserving keys and partitioning. Fold runs a parallel reduction
// whose per-partition results are combined with an associative, commutative
// merge. Schema is carried by the caller; MapValues does not copy it.
package dataset
