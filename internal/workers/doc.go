// Package workers computes CPU-aware worker counts for the conversion
// pipelines, honoring container CPU limits and the CONVERT_WORKERS
// override.
package workers
