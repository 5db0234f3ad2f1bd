// Package resilience provides retry and concurrency-limiting primitives for
// calls to unreliable external services.
//
// Retry supports pluggable backoff strategies. The oracle gateway retries
// throttled calls with LinearBackoff (attempt x step), matching the
// throttling contract of hosted model APIs, and gives up after a fixed
// attempt ceiling. Bulkhead bounds total in-flight calls to a dependency so
// concurrent fan-out stages cannot overwhelm it.
package resilience
