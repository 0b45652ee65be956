package artifact

import (
	"errors"
	"fmt"

	"github.com/hupe1980/labeltransform/encoder"
	"github.com/hupe1980/labeltransform/label"
)

const (
	// MetaName is the record name of Meta inside a model container.
	MetaName = "LabelTransformMeta"
	// ParamName is the record name of Param inside a model container.
	ParamName = "LabelTransformParam"
)

// ErrMissingTag is returned when a persisted entry has no type tag.
var ErrMissingTag = errors.New("missing type tag")

// Meta holds the execution flag of the stage.
type Meta struct {
	NeedRun bool `json:"need_run"`
}

// Param holds the encoder in text form plus its type tags.
//
// EncoderKeyType is indexed by the text form of each key and EncoderValueType
// by the text form of each value.
type Param struct {
	LabelEncoder     map[string]string `json:"label_encoder"`
	EncoderKeyType   map[string]string `json:"encoder_key_type"`
	EncoderValueType map[string]string `json:"encoder_value_type"`
}

// Bundle is the pair of records produced by Export.
type Bundle struct {
	Meta  Meta  `json:"LabelTransformMeta"`
	Param Param `json:"LabelTransformParam"`
}

// Export converts an encoder into its persisted form.
func Export(needRun bool, enc *encoder.Encoder) Bundle {
	pairs := enc.Pairs()
	mapping := make(map[string]string, len(pairs))
	for _, p := range pairs {
		mapping[p.Key.String()] = p.Value.String()
	}

	return Bundle{
		Meta: Meta{NeedRun: needRun},
		Param: Param{
			LabelEncoder:     mapping,
			EncoderKeyType:   enc.KeyTags(),
			EncoderValueType: enc.ValueTags(),
		},
	}
}

// Decode rebuilds the execution flag and the encoder from a bundle.
// A bundle without any mapping fails with encoder.ErrEmptyCatalog.
func Decode(b Bundle) (bool, *encoder.Encoder, error) {
	if len(b.Param.LabelEncoder) == 0 {
		return false, nil, encoder.ErrEmptyCatalog
	}

	pairs := make([]encoder.Pair, 0, len(b.Param.LabelEncoder))
	for k, v := range b.Param.LabelEncoder {
		kt, ok := b.Param.EncoderKeyType[k]
		if !ok {
			return false, nil, fmt.Errorf("key %q: %w", k, ErrMissingTag)
		}
		key, err := label.Parse(k, kt)
		if err != nil {
			return false, nil, fmt.Errorf("key %q: %w", k, err)
		}

		vt, ok := b.Param.EncoderValueType[v]
		if !ok {
			return false, nil, fmt.Errorf("value %q: %w", v, ErrMissingTag)
		}
		value, err := label.Parse(v, vt)
		if err != nil {
			return false, nil, fmt.Errorf("value %q: %w", v, err)
		}

		pairs = append(pairs, encoder.Pair{Key: key, Value: value})
	}

	enc, err := encoder.New(pairs)
	if err != nil {
		return false, nil, err
	}
	return b.Meta.NeedRun, enc, nil
}
