// Package formats is the single source of truth for the formats the
// converter understands: canonical format ids, display labels, MIME types,
// file extensions, and the source-to-target compatibility matrix consumed
// by both the UI-facing listing endpoint and the conversion router.
package formats
