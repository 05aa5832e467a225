package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_converter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_converter_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_converter_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Conversion metrics
var (
	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_converter_conversions_total",
			Help: "Total number of conversion attempts by executor and outcome",
		},
		[]string{"executor", "status"},
	)

	ConversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_converter_conversion_duration_seconds",
			Help:    "Conversion duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"executor"},
	)

	ConversionInputBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_converter_conversion_input_bytes",
			Help:    "Size of uploaded files by executor",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"executor"},
	)

	ConversionOutputBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_converter_conversion_output_bytes",
			Help:    "Size of converted output by executor",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"executor"},
	)

	ConversionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_converter_conversion_errors_total",
			Help: "Total number of conversion failures by error code",
		},
		[]string{"executor", "code"},
	)
)

// Media engine metrics
var (
	EngineJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_converter_engine_jobs_total",
			Help: "Total number of media engine jobs",
		},
		[]string{"status"},
	)

	EngineJobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "file_converter_engine_job_duration_seconds",
			Help:    "Media engine job duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	EngineJobsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "file_converter_engine_jobs_in_progress",
			Help: "Number of media engine jobs currently in progress",
		},
	)
)

// Proxy metrics
var (
	ProxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_converter_proxy_requests_total",
			Help: "Total number of proxied remote fetches",
		},
		[]string{"status"},
	)

	ProxyBytesRelayed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_converter_proxy_bytes_relayed_total",
			Help: "Total bytes relayed through the proxy endpoint",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "file_converter_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}

// ObserveConversion records one executor invocation.
func ObserveConversion(executor, status string, seconds float64, inBytes, outBytes int64) {
	ConversionsTotal.WithLabelValues(executor, status).Inc()
	ConversionDuration.WithLabelValues(executor).Observe(seconds)
	ConversionInputBytes.WithLabelValues(executor).Observe(float64(inBytes))
	if outBytes > 0 {
		ConversionOutputBytes.WithLabelValues(executor).Observe(float64(outBytes))
	}
}
