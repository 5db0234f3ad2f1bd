package llm

import (
	"context"

	"github.com/kbukum/chapterkit/provider"
)

// Provider is the interface that oracle backends must implement.
//
// Backends report throttling by returning an error for which
// errors.IsThrottled is true; the gateway retries those with linear backoff.
// All other errors propagate immediately.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Stream sends a completion request and returns a channel of streamed
	// chunks. The channel is closed when the stream ends.
	Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error)
}
