package llm

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/kbukum/chapterkit/llm"

// gatewayMetrics holds the oracle call counters. Instrument creation never
// fails with the default no-op meter, so errors are intentionally dropped.
type gatewayMetrics struct {
	calls     metric.Int64Counter
	throttled metric.Int64Counter
	exhausted metric.Int64Counter
}

func newGatewayMetrics() *gatewayMetrics {
	meter := otel.Meter(meterName)
	calls, _ := meter.Int64Counter("oracle.calls",
		metric.WithDescription("Total oracle invocations, including retries."))
	throttled, _ := meter.Int64Counter("oracle.throttled",
		metric.WithDescription("Oracle invocations rejected by rate limiting."))
	exhausted, _ := meter.Int64Counter("oracle.retry_exhausted",
		metric.WithDescription("Oracle invocations that failed after the retry ceiling."))
	return &gatewayMetrics{calls: calls, throttled: throttled, exhausted: exhausted}
}
