package transcription

import (
	"context"

	"github.com/kbukum/chapterkit/provider"
)

// Provider is the interface transcription backends must implement. Jobs are
// asynchronous: a started job is polled by name until it reaches a terminal
// state, then the finished result is fetched.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// StartJob submits the media object for transcription and returns the
	// job name used for polling.
	StartJob(ctx context.Context, req JobRequest) (string, error)

	// Status returns the current lifecycle state of the named job.
	Status(ctx context.Context, jobName string) (JobStatus, error)

	// FetchResult retrieves the finished transcription for the named job.
	// It must only be called once Status reports StatusCompleted.
	FetchResult(ctx context.Context, jobName string) (*Result, error)
}

// Registry is the package-level registry transcription backends register
// with from their init functions.
var Registry = provider.NewRegistry[Provider]()

// RegisterFactory registers a named backend factory with the package registry.
func RegisterFactory(name string, factory provider.Factory[Provider]) {
	Registry.RegisterFactory(name, factory)
}
