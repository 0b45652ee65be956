// Package prommetrics exports label transform metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc := prommetrics.New(reg)
//	t, _ := labeltransform.New(cfg, labeltransform.WithMetricsCollector(mc))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/labeltransform"
)

// Collector implements labeltransform.MetricsCollector.
type Collector struct {
	opLatency      *prometheus.HistogramVec
	ops            *prometheus.CounterVec
	records        *prometheus.CounterVec
	encoderLabels  prometheus.Gauge
	encoderEmitted *prometheus.CounterVec
}

var _ labeltransform.MetricsCollector = (*Collector)(nil)

// New creates a collector and registers it with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "labeltransform_op_duration_seconds",
			Help:    "Latency of label transform operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "kind"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "labeltransform_ops_total",
			Help: "Label transform operations by outcome",
		}, []string{"op", "kind", "status"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "labeltransform_records_total",
			Help: "Records rewritten by successful transforms",
		}, []string{"kind"}),
		encoderLabels: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "labeltransform_encoder_labels",
			Help: "Number of distinct labels in the last applied encoder",
		}),
		encoderEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "labeltransform_encoder_events_total",
			Help: "Encoder events emitted after transforms",
		}, []string{"name", "namespace", "type"}),
	}

	reg.MustRegister(c.opLatency, c.ops, c.records, c.encoderLabels, c.encoderEmitted)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (c *Collector) observe(op, kind string, d time.Duration, err error) {
	c.opLatency.WithLabelValues(op, kind).Observe(d.Seconds())
	c.ops.WithLabelValues(op, kind, status(err)).Inc()
}

// RecordFit implements labeltransform.MetricsCollector.
func (c *Collector) RecordFit(kind labeltransform.RecordKind, _ int, d time.Duration, err error) {
	c.observe("fit", string(kind), d, err)
}

// RecordTransform implements labeltransform.MetricsCollector.
func (c *Collector) RecordTransform(kind labeltransform.RecordKind, records int, d time.Duration, err error) {
	c.observe("transform", string(kind), d, err)
	if err == nil {
		c.records.WithLabelValues(string(kind)).Add(float64(records))
	}
}

// RecordLoad implements labeltransform.MetricsCollector.
func (c *Collector) RecordLoad(d time.Duration, err error) {
	c.observe("load", "", d, err)
}

// EmitEncoder implements labeltransform.MetricsCollector.
func (c *Collector) EmitEncoder(ev labeltransform.Event) {
	c.encoderLabels.Set(float64(len(ev.Pairs)))
	c.encoderEmitted.WithLabelValues(ev.Name, ev.Namespace, ev.Type).Inc()
}
