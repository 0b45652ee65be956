package labeltransform

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Config is the read-only configuration of a Transformer.
type Config struct {
	// NeedRun is persisted with the model. Pipelines skip the stage when false.
	NeedRun bool `json:"need_run" yaml:"need_run"`
	// LabelEncoder is an explicit raw label to encoded label mapping. Keys are
	// text; their types come from LabelList when it is set.
	LabelEncoder map[string]any `json:"label_encoder,omitempty" yaml:"label_encoder,omitempty"`
	// LabelList types the keys of LabelEncoder. It is ignored without one.
	LabelList []any `json:"label_list,omitempty" yaml:"label_list,omitempty"`
	// LabelName, when set, is written to the schema of transformed training
	// datasets. Empty keeps the dataset's own label field.
	LabelName string `json:"label_name,omitempty" yaml:"label_name,omitempty"`
}

// DefaultConfig returns a configuration that discovers the encoder at fit time.
func DefaultConfig() Config {
	return Config{NeedRun: true}
}

// LoadConfig reads a configuration file. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON. Missing fields keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		// Numbers stay json.Number so integral ids keep their integer type.
		dec := gojson.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg, nil
}
