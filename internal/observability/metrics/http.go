package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	simplifyTotal    *prometheus.CounterVec
	simplifyDuration *prometheus.HistogramVec
	llmTokensTotal   *prometheus.CounterVec
	jargonTerms      *prometheus.HistogramVec
	extractionTotal  *prometheus.CounterVec
	publishFailures  *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plainbrief",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "plainbrief",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "plainbrief",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	simplifyTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plainbrief",
			Subsystem: "simplify",
			Name:      "requests_total",
			Help:      "Total simplification requests by audience, input kind and outcome.",
		},
		[]string{"service", "audience", "input", "outcome"},
	)
	simplifyDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "plainbrief",
			Subsystem: "simplify",
			Name:      "duration_seconds",
			Help:      "End-to-end simplification duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "input"},
	)
	llmTokensTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plainbrief",
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Upstream token usage by direction.",
		},
		[]string{"service", "direction", "model"},
	)
	jargonTerms := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "plainbrief",
			Subsystem: "jargon",
			Name:      "terms",
			Help:      "Distribution of glossary entries per request.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
		[]string{"service"},
	)
	extractionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plainbrief",
			Subsystem: "extract",
			Name:      "files_total",
			Help:      "Total file extractions by format and outcome.",
		},
		[]string{"service", "format", "outcome"},
	)
	publishFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plainbrief",
			Subsystem: "events",
			Name:      "publish_failures_total",
			Help:      "Brief-created events that could not be published.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		simplifyTotal,
		simplifyDuration,
		llmTokensTotal,
		jargonTerms,
		extractionTotal,
		publishFailures,
	)

	return &HTTPServerMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		simplifyTotal:    simplifyTotal,
		simplifyDuration: simplifyDuration,
		llmTokensTotal:   llmTokensTotal,
		jargonTerms:      jargonTerms,
		extractionTotal:  extractionTotal,
		publishFailures:  publishFailures,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/briefs/"):
		return "/api/briefs/{brief_id}"
	case strings.HasPrefix(path, "/api/history/") && path != "/api/history/export":
		return "/api/history/{history_id}"
	case strings.HasPrefix(path, "/api/saved/"):
		return "/api/saved/{saved_id}"
	case strings.HasPrefix(path, "/uploads/"):
		return "/uploads/{image_key}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordSimplify(service, audience, input, outcome string, duration time.Duration) {
	if audience == "" {
		audience = "unknown"
	}
	m.simplifyTotal.WithLabelValues(service, audience, input, outcome).Inc()
	m.simplifyDuration.WithLabelValues(service, input).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordTokenUsage(service, model string, promptTokens, completionTokens int) {
	if model == "" {
		model = "unknown"
	}
	if promptTokens > 0 {
		m.llmTokensTotal.WithLabelValues(service, "in", model).Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		m.llmTokensTotal.WithLabelValues(service, "out", model).Add(float64(completionTokens))
	}
}

func (m *HTTPServerMetrics) RecordJargonTerms(service string, count int) {
	m.jargonTerms.WithLabelValues(service).Observe(float64(count))
}

func (m *HTTPServerMetrics) RecordExtraction(service, format, outcome string) {
	if format == "" {
		format = "unknown"
	}
	m.extractionTotal.WithLabelValues(service, format, outcome).Inc()
}

func (m *HTTPServerMetrics) RecordPublishFailure(service string) {
	m.publishFailures.WithLabelValues(service).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
