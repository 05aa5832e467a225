package metrics

// InitializeMetrics pre-populates the expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	executors := []string{"image", "document", "image-pdf", "media-stub", "engine"}
	statuses := []string{"success", "error"}

	for _, e := range executors {
		for _, s := range statuses {
			ConversionsTotal.WithLabelValues(e, s)
		}
		ConversionDuration.WithLabelValues(e)
		ConversionInputBytes.WithLabelValues(e)
		ConversionOutputBytes.WithLabelValues(e)
	}

	for _, s := range statuses {
		EngineJobsTotal.WithLabelValues(s)
		ProxyRequestsTotal.WithLabelValues(s)
	}
}
