package llm

import "github.com/kbukum/chapterkit/provider"

// Registry is the package-level registry oracle backends register with from
// their init functions.
var Registry = provider.NewRegistry[Provider]()

// RegisterFactory registers a named backend factory with the package registry.
func RegisterFactory(name string, factory provider.Factory[Provider]) {
	Registry.RegisterFactory(name, factory)
}
