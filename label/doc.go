// Package label provides the typed raw label values handled by labeltransform.
//
// A label is a small closed tagged value. Its Kind is carried explicitly so a
// label can be written out as text and parsed back into exactly the same
// primitive type later on.
//
// # Kinds
//
//   - label.Int(-3): signed integer class
//   - label.Uint(7): unsigned integer class
//   - label.Float(0.5): floating point class
//   - label.String("cat"): text
//
// # Type Tags
//
// Every kind maps to a stable tag used in persisted artifacts:
//
//	v := label.Int(42)
//	text, tag := v.String(), v.Tag() // "42", "int"
//	back, err := label.Parse(text, tag)
//
// Parse never guesses. An unknown tag is reported as *ErrUnknownTypeTag.
//
// # Ordering
//
// Compare defines a total order within one kind. Comparing labels of
// different kinds fails with *ErrMixedKinds; a label population is expected
// to be homogeneous.
package label
