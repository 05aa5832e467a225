// Package streaming provides timeout-protected chunked writing for
// relaying remote file bytes to HTTP clients, used by the proxy endpoint.
package streaming
