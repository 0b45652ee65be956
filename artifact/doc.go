// Package artifact persists label encoders.
//
// An exported encoder is a Bundle of two records:
//
//	LabelTransformMeta  { need_run }
//	LabelTransformParam { label_encoder, encoder_key_type, encoder_value_type }
//
// Every raw key and value is written in text form next to its type tag, so a
// bundle is fully textual and can be read back without knowing the label
// types in advance. Decode parses each entry through label.Parse and fails on
// the first unknown or missing tag; an encoder is never partially rebuilt.
//
// Marshal wraps a bundle in a small binary container (magic, version, codec
// name, compression, CRC32) and Store keeps versioned containers in any
// blobstore.Store.
package artifact
