package labeltransform

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/labeltransform/encoder"
)

// Event identity of the encoder emission.
const (
	EventName      = "label_transform"
	EventNamespace = "train"
	EventType      = "LABEL_TRANSFORM"
)

// Event carries the final encoder contents after a transform.
type Event struct {
	Name      string
	Namespace string
	Type      string
	Pairs     []encoder.Pair
}

func newEvent(enc *encoder.Encoder) Event {
	return Event{
		Name:      EventName,
		Namespace: EventNamespace,
		Type:      EventType,
		Pairs:     enc.Pairs(),
	}
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package prommetrics).
type MetricsCollector interface {
	// RecordFit is called after each fit. labels is the encoder size.
	RecordFit(kind RecordKind, labels int, duration time.Duration, err error)

	// RecordTransform is called after each transform over a dataset.
	RecordTransform(kind RecordKind, records int, duration time.Duration, err error)

	// RecordLoad is called after a model is rebuilt from an artifact.
	RecordLoad(duration time.Duration, err error)

	// EmitEncoder is called once per successful transform with the encoder
	// that was applied.
	EmitEncoder(ev Event)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFit(RecordKind, int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordTransform(RecordKind, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(time.Duration, error)                       {}
func (NoopMetricsCollector) EmitEncoder(Event)                                     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FitCount             atomic.Int64
	FitErrors            atomic.Int64
	TransformCount       atomic.Int64
	TransformErrors      atomic.Int64
	TransformRecords     atomic.Int64
	TransformTotalNanos  atomic.Int64
	LoadCount            atomic.Int64
	LoadErrors           atomic.Int64
	EncoderEmissionCount atomic.Int64

	mu        sync.Mutex
	lastEvent *Event
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(_ RecordKind, _ int, _ time.Duration, err error) {
	b.FitCount.Add(1)
	if err != nil {
		b.FitErrors.Add(1)
	}
}

// RecordTransform implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTransform(_ RecordKind, records int, duration time.Duration, err error) {
	b.TransformCount.Add(1)
	b.TransformTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.TransformErrors.Add(1)
		return
	}
	b.TransformRecords.Add(int64(records))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(_ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// EmitEncoder implements MetricsCollector.
func (b *BasicMetricsCollector) EmitEncoder(ev Event) {
	b.EncoderEmissionCount.Add(1)
	b.mu.Lock()
	b.lastEvent = &ev
	b.mu.Unlock()
}

// LastEvent returns the most recent encoder emission.
func (b *BasicMetricsCollector) LastEvent() (Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastEvent == nil {
		return Event{}, false
	}
	return *b.lastEvent, true
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FitCount:             b.FitCount.Load(),
		FitErrors:            b.FitErrors.Load(),
		TransformCount:       b.TransformCount.Load(),
		TransformErrors:      b.TransformErrors.Load(),
		TransformRecords:     b.TransformRecords.Load(),
		TransformAvgNanos:    b.getAvgTransformNanos(),
		LoadCount:            b.LoadCount.Load(),
		LoadErrors:           b.LoadErrors.Load(),
		EncoderEmissionCount: b.EncoderEmissionCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgTransformNanos() int64 {
	count := b.TransformCount.Load()
	if count == 0 {
		return 0
	}
	return b.TransformTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FitCount             int64
	FitErrors            int64
	TransformCount       int64
	TransformErrors      int64
	TransformRecords     int64
	TransformAvgNanos    int64
	LoadCount            int64
	LoadErrors           int64
	EncoderEmissionCount int64
}
