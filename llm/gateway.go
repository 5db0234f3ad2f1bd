package llm

import (
	"context"
	"time"

	"github.com/kbukum/chapterkit/errors"
	"github.com/kbukum/chapterkit/logger"
	"github.com/kbukum/chapterkit/resilience"
)

// GatewayConfig configures the oracle gateway.
type GatewayConfig struct {
	// Model is the default model identifier passed to the backend.
	Model string `yaml:"model" mapstructure:"model"`
	// MaxAttempts is the retry ceiling for throttled calls (including the
	// first attempt). Defaults to 10.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=0"`
	// BackoffStep is the linear backoff step: the n-th retry waits n x step.
	// Defaults to 10s.
	BackoffStep time.Duration `yaml:"backoff_step" mapstructure:"backoff_step"`
	// MaxConcurrent caps in-flight backend calls across all pipeline stages.
	// Defaults to 10.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent" validate:"gte=0"`
}

// ApplyDefaults applies default values to unset fields.
func (c *GatewayConfig) ApplyDefaults() {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 10
	}
	if c.BackoffStep == 0 {
		c.BackoffStep = 10 * time.Second
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 10
	}
}

// Gateway wraps an oracle backend with the pipeline's invocation contract:
// throttled calls are retried with linear backoff up to a fixed ceiling,
// any other failure propagates immediately, and total in-flight calls are
// bounded by a bulkhead shared across all fan-out stages.
type Gateway struct {
	backend  Provider
	cfg      GatewayConfig
	bulkhead *resilience.Bulkhead
	log      *logger.Logger
	metrics  *gatewayMetrics
}

// NewGateway creates a gateway around the given backend.
func NewGateway(backend Provider, cfg GatewayConfig, log *logger.Logger) *Gateway {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{
		backend:  backend,
		cfg:      cfg,
		bulkhead: resilience.NewBulkhead(cfg.MaxConcurrent),
		log:      log.WithComponent("oracle"),
		metrics:  newGatewayMetrics(),
	}
}

// Backend returns the wrapped backend.
func (g *Gateway) Backend() Provider { return g.backend }

// Invoke sends the conversation to the backend and returns its response.
// Throttled calls are retried with linear backoff (attempt x BackoffStep);
// after MaxAttempts the call fails with ORACLE_UNAVAILABLE. Non-throttle
// errors propagate immediately.
func (g *Gateway) Invoke(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if req.Model == "" {
		req.Model = g.cfg.Model
	}

	resp, err := resilience.Retry(ctx, g.retryConfig(req.Model), func() (*CompletionResponse, error) {
		g.metrics.calls.Add(ctx, 1)
		return resilience.ExecuteWithResult(g.bulkhead, ctx, func() (*CompletionResponse, error) {
			return g.backend.Complete(ctx, req)
		})
	})
	if err != nil {
		if errors.IsThrottled(err) {
			g.metrics.exhausted.Add(ctx, 1)
			return nil, errors.OracleUnavailable(req.Model, g.cfg.MaxAttempts, err)
		}
		return nil, err
	}
	return resp, nil
}

// InvokeStream sends the conversation to the backend in streaming mode.
// Only the initial call is retried on throttling; once the stream is open,
// errors surface as chunk errors.
func (g *Gateway) InvokeStream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error) {
	if req.Model == "" {
		req.Model = g.cfg.Model
	}

	ch, err := resilience.Retry(ctx, g.retryConfig(req.Model), func() (<-chan StreamChunk, error) {
		g.metrics.calls.Add(ctx, 1)
		return g.backend.Stream(ctx, req)
	})
	if err != nil {
		if errors.IsThrottled(err) {
			g.metrics.exhausted.Add(ctx, 1)
			return nil, errors.OracleUnavailable(req.Model, g.cfg.MaxAttempts, err)
		}
		return nil, err
	}
	return ch, nil
}

// CompleteText sends a single-turn text prompt and returns the text of the
// first response block.
func (g *Gateway) CompleteText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.Invoke(ctx, CompletionRequest{Messages: UserMessage(prompt)})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (g *Gateway) retryConfig(model string) resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts: g.cfg.MaxAttempts,
		Backoff:     resilience.LinearBackoff(g.cfg.BackoffStep),
		RetryIf:     errors.IsThrottled,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			g.metrics.throttled.Add(context.Background(), 1)
			g.log.Warn("model throttled, backing off", logger.Fields(
				logger.FieldModel, model,
				logger.FieldAttempt, attempt,
				"backoff", backoff.String(),
			))
		},
	}
}
