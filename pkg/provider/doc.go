// Package provider holds what the Ark chat and responses protocol adapters
// share: the Provider and StreamTransformer interfaces, call options and
// tool descriptors, the native tool registry, usage and finish-reason
// normalization, ordered tool-call buffers, the HTTP client with vendor
// error mapping, and the SSE pump that drives a transformer.
//
// Protocol-specific conversion lives in the chat and responses
// subpackages; the ark package selects between them per model.
package provider
