// Package logger configures the process-wide log/slog JSON logger from the
// server configuration and carries request-scoped loggers through
// context.Context, so handler, service and store code log with the trace ID
// of the request they serve.
package logger
