package chapters

import (
	"context"

	"github.com/kbukum/chapterkit/logger"
)

// Oracle is the pipeline's view of the inference gateway: a single-turn
// text prompt in, the first text block of the response out.
// *llm.Gateway satisfies it.
type Oracle interface {
	CompleteText(ctx context.Context, prompt string) (string, error)
}

// Pipeline holds the shared dependencies of all chaptering stages.
type Pipeline struct {
	oracle Oracle
	cfg    Config
	log    *logger.Logger
}

// NewPipeline creates a pipeline around the given oracle.
func NewPipeline(oracle Oracle, cfg Config, log *logger.Logger) *Pipeline {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{
		oracle: oracle,
		cfg:    cfg,
		log:    log.WithComponent("chapters"),
	}
}
