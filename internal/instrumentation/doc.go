// Package instrumentation provides OpenTelemetry metrics and audit logging
// for tool dispatch. Metrics are exported through a Prometheus reader and
// scraped via the metrics HTTP server; audit entries are structured slog
// lines, one per tool invocation.
package instrumentation
