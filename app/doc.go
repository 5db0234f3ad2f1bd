// Package app assembles the configured components into a running
// application: it selects the oracle, transcription, and storage backends
// named in the configuration, wires the gateway and pipeline runner, and
// initializes telemetry when enabled.
package app
