// Package observability provides OpenTelemetry tracing and metrics for
// pipeline runs.
//
// Each pipeline stage opens a span (overview, sections, timestamps, enrich,
// store) under a root run span, and metric instruments count runs, produced
// chapters, assigned segments, and dropped enrichment units.
//
// Telemetry is exported over OTLP/HTTP; when Config.Enabled is false the
// global no-op providers are left in place and the same instrumentation
// calls become free.
package observability
