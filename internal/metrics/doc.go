// Package metrics provides Prometheus instrumentation for the file
// converter service.
//
// All metrics are prefixed with "file_converter_" to avoid naming
// collisions with other applications.
//
// # Metric Categories
//
// ## HTTP Metrics
//
// Track HTTP request performance and error rates:
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Conversion Metrics
//
// Track executor throughput and failures:
//   - ConversionsTotal: Counter of attempts by executor and outcome
//   - ConversionDuration: Histogram of conversion time by executor
//   - ConversionInputBytes / ConversionOutputBytes: size histograms
//   - ConversionErrorsTotal: Counter of failures by error code
//
// ## Media Engine Metrics
//
// Monitor in-process ffmpeg jobs:
//   - EngineJobsTotal: Counter by status
//   - EngineJobDuration: Histogram of job duration
//   - EngineJobsInProgress: Gauge of active jobs
//
// ## Proxy Metrics
//
//   - ProxyRequestsTotal: Counter of remote fetches by status
//   - ProxyBytesRelayed: Counter of bytes relayed to clients
//
// # Usage
//
// Metrics are automatically registered with the default Prometheus
// registry using promauto. To expose them, mount the promhttp.Handler()
// on your metrics endpoint:
//
//	import "github.com/prometheus/client_golang/prometheus/promhttp"
//
//	mux.Handle("/metrics", promhttp.Handler())
//
// Example PromQL queries:
//
// Conversion error rate by executor:
//
//	sum(rate(file_converter_conversions_total{status="error"}[5m])) by (executor) /
//	sum(rate(file_converter_conversions_total[5m])) by (executor)
//
// P95 conversion latency:
//
//	histogram_quantile(0.95, sum(rate(file_converter_conversion_duration_seconds_bucket[5m])) by (le, executor))
package metrics
