package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	recordTotal    *prometheus.CounterVec
	recordDuration *prometheus.HistogramVec
	recordInFlight prometheus.Gauge
	evictionsTotal *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	recordTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plainbrief",
			Subsystem: "worker",
			Name:      "history_record_total",
			Help:      "Total recorded history items by status.",
		},
		[]string{"service", "status"},
	)
	recordDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "plainbrief",
			Subsystem: "worker",
			Name:      "history_record_duration_seconds",
			Help:      "History recording duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	recordInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "plainbrief",
			Subsystem: "worker",
			Name:      "history_record_in_flight",
			Help:      "Number of in-flight history recordings.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	evictionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plainbrief",
			Subsystem: "worker",
			Name:      "history_evictions_total",
			Help:      "History rows evicted beyond the configured maximum.",
		},
		[]string{"service"},
	)

	registry.MustRegister(recordTotal, recordDuration, recordInFlight, evictionsTotal)

	return &WorkerMetrics{
		registry:       registry,
		recordTotal:    recordTotal,
		recordDuration: recordDuration,
		recordInFlight: recordInFlight,
		evictionsTotal: evictionsTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartRecord() {
	m.recordInFlight.Inc()
}

func (m *WorkerMetrics) FinishRecord(service string, duration time.Duration, err error) {
	m.recordInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.recordTotal.WithLabelValues(service, status).Inc()
	m.recordDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) AddEvictions(service string, count int) {
	if count <= 0 {
		return
	}
	m.evictionsTotal.WithLabelValues(service).Add(float64(count))
}
