package llm

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/kbukum/chapterkit/errors"
	"github.com/kbukum/chapterkit/logger"
)

type stubBackend struct {
	name     string
	complete func(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	stream   func(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error)
}

func (s *stubBackend) Name() string                       { return s.name }
func (s *stubBackend) IsAvailable(_ context.Context) bool { return true }
func (s *stubBackend) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	return s.complete(ctx, req)
}
func (s *stubBackend) Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error) {
	if s.stream != nil {
		return s.stream(ctx, req)
	}
	return nil, stderrors.New("not implemented")
}

func fastGateway(backend Provider, maxAttempts int) *Gateway {
	return NewGateway(backend, GatewayConfig{
		Model:       "test-model",
		MaxAttempts: maxAttempts,
		BackoffStep: time.Microsecond,
	}, logger.Nop())
}

func TestInvokeRetriesThrottling(t *testing.T) {
	calls := 0
	backend := &stubBackend{
		name: "stub",
		complete: func(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
			calls++
			if calls < 3 {
				return nil, errors.Throttled(req.Model, nil)
			}
			return &CompletionResponse{Content: "answer", Model: req.Model}, nil
		},
	}

	resp, err := fastGateway(backend, 10).Invoke(context.Background(), CompletionRequest{
		Messages: UserMessage("hello"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "answer" || calls != 3 {
		t.Errorf("content=%q calls=%d", resp.Content, calls)
	}
}

func TestInvokeCeilingBecomesUnavailable(t *testing.T) {
	calls := 0
	backend := &stubBackend{
		name: "stub",
		complete: func(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
			calls++
			return nil, errors.Throttled(req.Model, nil)
		},
	}

	_, err := fastGateway(backend, 4).Invoke(context.Background(), CompletionRequest{
		Messages: UserMessage("hello"),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	code, ok := errors.CodeOf(err)
	if !ok || code != errors.ErrCodeOracleUnavailable {
		t.Errorf("expected ORACLE_UNAVAILABLE, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 attempts, got %d", calls)
	}
}

func TestInvokeNonThrottleFailsImmediately(t *testing.T) {
	boom := stderrors.New("model exploded")
	calls := 0
	backend := &stubBackend{
		name: "stub",
		complete: func(_ context.Context, _ CompletionRequest) (*CompletionResponse, error) {
			calls++
			return nil, boom
		},
	}

	_, err := fastGateway(backend, 10).Invoke(context.Background(), CompletionRequest{
		Messages: UserMessage("hello"),
	})
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected underlying error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected no retry, got %d calls", calls)
	}
}

func TestInvokeAppliesDefaultModel(t *testing.T) {
	var seen string
	backend := &stubBackend{
		name: "stub",
		complete: func(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
			seen = req.Model
			return &CompletionResponse{Content: "ok"}, nil
		},
	}

	if _, err := fastGateway(backend, 1).Invoke(context.Background(), CompletionRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != "test-model" {
		t.Errorf("expected default model, got %q", seen)
	}
}

func TestCompleteText(t *testing.T) {
	backend := &stubBackend{
		name: "stub",
		complete: func(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
			if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
				t.Errorf("unexpected conversation: %+v", req.Messages)
			}
			return &CompletionResponse{Content: "<ans>yes</ans>"}, nil
		},
	}

	text, err := fastGateway(backend, 1).CompleteText(context.Background(), "is it?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "<ans>yes</ans>" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestInvokeStream(t *testing.T) {
	backend := &stubBackend{
		name: "stub",
		stream: func(_ context.Context, _ CompletionRequest) (<-chan StreamChunk, error) {
			ch := make(chan StreamChunk, 2)
			ch <- StreamChunk{Content: "hel"}
			ch <- StreamChunk{Content: "lo", Done: true}
			close(ch)
			return ch, nil
		},
	}

	ch, err := fastGateway(backend, 1).InvokeStream(context.Background(), CompletionRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out string
	for chunk := range ch {
		out += chunk.Content
	}
	if out != "hello" {
		t.Errorf("unexpected streamed text %q", out)
	}
}
