package encoder

import (
	"fmt"
	"slices"

	"github.com/hupe1980/labeltransform/label"
)

// FromConfig builds an encoder from an explicit configured mapping.
//
// Keys arrive in text form, as they do from JSON or YAML. Without a label list
// every key is a text label. With a label list, each key is parsed with the
// type of the list entries and must equal one of them, so "1.0" matches the
// float entry 1.0; a key without a match fails with ErrLabelListMismatch.
// Values keep their own type. An empty mapping fails with ErrEmptyCatalog.
func FromConfig(mapping map[string]any, labelList []any) (*Encoder, error) {
	if len(mapping) == 0 {
		return nil, ErrEmptyCatalog
	}

	var (
		listed map[label.Value]struct{}
		tags   []label.Tag
	)
	if labelList != nil {
		listed = make(map[label.Value]struct{}, len(labelList))
		for _, raw := range labelList {
			l, err := label.FromAny(raw)
			if err != nil {
				return nil, fmt.Errorf("label list: %w", err)
			}
			if !slices.Contains(tags, l.Tag()) {
				tags = append(tags, l.Tag())
			}
			listed[l] = struct{}{}
		}
	}

	pairs := make([]Pair, 0, len(mapping))
	for k, raw := range mapping {
		key := label.String(k)
		if listed != nil {
			l, ok := matchListed(k, tags, listed)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrLabelListMismatch, k)
			}
			key = l
		}

		value, err := label.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("label encoder value for %q: %w", k, err)
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return New(pairs)
}

// matchListed parses text with each listed type and returns the first result
// that is a member of the list.
func matchListed(text string, tags []label.Tag, listed map[label.Value]struct{}) (label.Value, bool) {
	for _, tag := range tags {
		l, err := label.Parse(text, string(tag))
		if err != nil {
			continue
		}
		if _, ok := listed[l]; ok {
			return l, true
		}
	}
	return label.Value{}, false
}
