// Package monitoring provides Prometheus metrics for the document pipeline.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Pipeline metrics
	PipelineRuns  *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector registered on the default
// registry. Create it once per process.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dotpress_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dotpress_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),

		PipelineRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dotpress_pipeline_runs_total",
				Help: "Total number of pipeline runs by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		StageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dotpress_pipeline_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"stage"},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dotpress_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordPipeline records one pipeline run outcome.
func (m *Metrics) RecordPipeline(operation, status string) {
	m.PipelineRuns.WithLabelValues(operation, status).Inc()
}

// RecordStage records the duration of a pipeline stage.
func (m *Metrics) RecordStage(stage string, duration time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// Timer measures a pipeline stage duration.
type Timer struct {
	start   time.Time
	metrics *Metrics
	stage   string
}

// NewTimer starts a timer for a stage. metrics may be nil.
func NewTimer(metrics *Metrics, stage string) *Timer {
	return &Timer{start: time.Now(), metrics: metrics, stage: stage}
}

// Stop stops the timer and records the duration.
func (t *Timer) Stop() {
	if t.metrics != nil {
		t.metrics.RecordStage(t.stage, time.Since(t.start))
	}
}
