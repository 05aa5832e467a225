// Package memory configures GOMEMLIMIT from container memory limits.
// Conversions are memory-hungry, so leaving the Go heap unbounded inside a
// limited container invites OOM kills; a fraction of the container limit
// is reserved for the heap and the rest for native buffers.
package memory
