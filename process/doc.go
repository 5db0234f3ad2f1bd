// Package process orchestrates full pipeline runs: it takes a
// transcription result through overview extraction, section extraction,
// timestamp assignment and enrichment, then optionally persists the
// output as JSON artifacts under a per-run storage prefix.
//
// Runs are identified by a generated UUID. Every stage is traced and the
// run outcome is recorded in the pipeline metrics when they are
// configured.
package process
