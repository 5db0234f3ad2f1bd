// Package llm provides the oracle gateway: a thin, retrying front over a
// pluggable language-model backend.
//
// The pipeline treats the model as a semantic oracle. All calls go through
// [Gateway], which owns the throttling contract (linear backoff, fixed
// retry ceiling, bounded in-flight calls) so the rest of the pipeline never
// sees a transient rate-limit error: a call either returns oracle text or
// fails with ORACLE_UNAVAILABLE.
//
// Backends implement [Provider] and register a factory, following the same
// pattern as the transcription and storage backends:
//
//	import _ "github.com/kbukum/chapterkit/llm/bedrock" // registers "bedrock"
//
//	backend, err := llm.Registry.Create("bedrock", map[string]any{
//	    "region": "us-east-1",
//	})
//	gw := llm.NewGateway(backend, llm.GatewayConfig{Model: modelID}, log)
package llm
