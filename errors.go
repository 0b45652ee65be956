package labeltransform

import (
	"errors"
	"fmt"

	"github.com/hupe1980/labeltransform/encoder"
	"github.com/hupe1980/labeltransform/label"
)

var (
	// ErrNoEncoder is returned when a transform or export is attempted without
	// an encoder, and by Configured when the configuration carries no mapping.
	ErrNoEncoder = errors.New("no label encoder")
)

// ErrUnmappedLabel indicates a label with no entry in the active direction of
// the encoder. The transform that met it is aborted as a whole.
type ErrUnmappedLabel struct {
	Label     label.Value
	Direction encoder.Direction
}

func (e *ErrUnmappedLabel) Error() string {
	return fmt.Sprintf("label %s (%s) has no %s mapping", e.Label, e.Label.Kind, e.Direction)
}
