// Package testutil provides testing utilities for labeltransform.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG for generating label populations and for
// reshuffling them, so that order-independence can be checked.
//
// # Label Populations
//
//	rng := testutil.NewRNG(seed)
//	labels := rng.TextLabels(1000, 10) // 1000 draws from 10 distinct labels
//	shuffled := rng.Shuffled(labels)
//	keys := testutil.Keys(len(labels))
package testutil
