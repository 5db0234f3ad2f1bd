package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/chapterkit/errors"
)

type pipelineKnobs struct {
	FanoutWidth int     `mapstructure:"fanout_width" validate:"gt=0"`
	BatchSize   int     `mapstructure:"batch_size" validate:"gt=0"`
	Threshold   float64 `mapstructure:"density_threshold" validate:"gt=0,lte=1"`
	Backend     string  `mapstructure:"backend" validate:"required,oneof=bedrock ollama"`
}

func TestValidateOK(t *testing.T) {
	knobs := pipelineKnobs{FanoutWidth: 10, BatchSize: 10, Threshold: 0.8, Backend: "bedrock"}
	if err := Validate(knobs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	knobs := pipelineKnobs{FanoutWidth: 0, BatchSize: 10, Threshold: 1.5, Backend: "gpt"}
	err := Validate(knobs)
	if err == nil {
		t.Fatal("expected validation error")
	}

	code, ok := errors.CodeOf(err)
	if !ok || code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT code, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{"fanout_width", "density_threshold", "backend"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in message %q", want, msg)
		}
	}
	if strings.Contains(msg, "batch_size") {
		t.Errorf("batch_size should not fail: %q", msg)
	}
}

func TestSnakeCase(t *testing.T) {
	if got := toSnakeCase("FanoutWidth"); got != "fanout_width" {
		t.Errorf("toSnakeCase = %q", got)
	}
}
