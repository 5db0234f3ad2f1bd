// Package provider defines the base interface and registry shared by all
// pluggable backends (oracle, transcription, storage). Backends register a
// named Factory; configuration selects one by name at startup.
package provider

import "context"

// Provider is the base interface all backends must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration.
type Factory[T Provider] func(cfg map[string]any) (T, error)
