package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %v", cfg.SampleRate)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("Interval = %v", cfg.Interval)
	}
}

func TestPipelineMetricsNoopProvider(t *testing.T) {
	// The global provider is a no-op unless InitMeter ran; instrument
	// creation and recording must still work.
	m, err := NewPipelineMetrics(Meter("test"))
	if err != nil {
		t.Fatalf("NewPipelineMetrics() error = %v", err)
	}

	ctx := context.Background()
	m.RecordRun(ctx, "ok", 2*time.Second)
	m.RecordChapters(ctx, 3, 12)
	m.RecordDrop(ctx, "quiz", "missing_tag")
}

func TestSpanHelpersWithoutSpan(t *testing.T) {
	// No span in context: helpers must be safe no-ops.
	ctx := context.Background()
	SetSpanAttribute(ctx, "run.id", "abc")
	SetSpanAttribute(ctx, "topics.count", 3)
	SetSpanError(ctx, errors.New("boom"))
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), SpanRun)
	if span == nil {
		t.Fatal("StartSpan returned nil span")
	}
	SetSpanAttribute(ctx, AttrRunID, "run-1")
	span.End()
}
