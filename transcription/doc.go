// Package transcription defines the provider interface and common types
// for interacting with speech-to-text backends.
//
// Backends register a named factory from their init functions and are
// selected by configuration at startup.
//
// # Backends
//
//   - transcription/awstranscribe: Amazon Transcribe batch jobs
//   - transcription/whisper: faster-whisper HTTP sidecar
//
// # Usage
//
//	p, err := transcription.Registry.Create("awstranscribe", cfg)
//	jobName, err := p.StartJob(ctx, req)
//	// poll p.Status(ctx, jobName) until terminal, then
//	result, err := p.FetchResult(ctx, jobName)
package transcription
