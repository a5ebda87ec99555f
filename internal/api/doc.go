// Package api exposes the task service over JSON HTTP. It owns routing,
// CORS, request decoding, path parameter parsing, and the translation of
// service and store errors into status codes with client-safe messages.
package api
