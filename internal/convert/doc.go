// Package convert implements the server-side conversion executors: images,
// documents, image-to-PDF, and the media stubs. Each executor is a stateless
// transformation from a validated request to either a byte payload or a
// structured, machine-readable error. No uploaded bytes ever touch durable
// storage; everything lives in request-scoped memory.
package convert
