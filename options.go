package labeltransform

import (
	"log/slog"

	"github.com/hupe1980/labeltransform/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
}

// Option configures a Transformer or a loaded Model.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &labeltransform.BasicMetricsCollector{}
//	t, _ := labeltransform.New(cfg, labeltransform.WithMetricsCollector(metrics))
//	// ... fit and transform ...
//	stats := metrics.GetStats()
//	fmt.Printf("Transforms: %d, records: %d\n", stats.TransformCount, stats.TransformRecords)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := labeltransform.NewJSONLogger(slog.LevelInfo)
//	t, _ := labeltransform.New(cfg, labeltransform.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithController bounds the partition workers of every transform.
// Datasets that already carry a controller keep it when none is set here.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
