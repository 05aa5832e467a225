// Package middleware provides the HTTP middleware chain: W3C access
// logging, Prometheus metrics, gzip compression for JSON responses,
// security headers, request IDs, and panic recovery.
package middleware
