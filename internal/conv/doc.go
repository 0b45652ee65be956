// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent overflow when converting
// encoded label ids and artifact section lengths between integer widths.
//
// Use cases:
//   - Placing encoded label ids into 32-bit bitmaps
//   - Validating lengths read back from artifact headers
package conv
