// Package shared holds the HTTP helpers used by handlers and middleware:
// JSON responses, request decoding and validation, and the trace ID carried
// in the request context.
package shared
