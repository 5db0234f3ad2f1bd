package process

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/chapterkit/chapters"
	"github.com/kbukum/chapterkit/errors"
	"github.com/kbukum/chapterkit/logger"
	"github.com/kbukum/chapterkit/observability"
	"github.com/kbukum/chapterkit/transcription"
)

// Output is the result of a full pipeline run.
type Output struct {
	RunID    string             `json:"run_id"`
	Overview *chapters.Overview `json:"overview"`
	Chapters []chapters.Chapter `json:"chapters"`
}

// Runner drives the four pipeline stages over a transcription result.
// All stages before enrichment are all-or-nothing: a failed stage aborts
// the run and nothing partial is returned.
type Runner struct {
	pipeline *chapters.Pipeline
	metrics  *observability.PipelineMetrics
	log      *logger.Logger
}

func NewRunner(pipeline *chapters.Pipeline, metrics *observability.PipelineMetrics, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{
		pipeline: pipeline,
		metrics:  metrics,
		log:      log.WithComponent("process"),
	}
}

// Run turns a transcription result into an overview and timestamped,
// enriched chapters.
func (r *Runner) Run(ctx context.Context, result *transcription.Result) (*Output, error) {
	if result == nil || result.Transcript == "" {
		return nil, errors.InvalidInput("transcript", "empty")
	}
	if len(result.AudioSegments) == 0 {
		return nil, errors.InvalidInput("audio_segments", "empty")
	}

	runID := uuid.NewString()
	log := r.log.WithFields(logger.Fields(logger.FieldRunID, runID))
	started := time.Now()

	ctx, span := observability.StartSpan(ctx, observability.SpanRun)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRunID, runID)
	observability.SetSpanAttribute(ctx, observability.AttrSegments, len(result.AudioSegments))

	log.Info("pipeline run started", logger.Fields("segments", len(result.AudioSegments)))

	out, err := r.run(ctx, runID, result, log)
	if err != nil {
		observability.SetSpanError(ctx, err)
		r.recordRun(ctx, "error", started)
		return nil, err
	}
	r.recordRun(ctx, "ok", started)
	if r.metrics != nil {
		r.metrics.RecordChapters(ctx, len(out.Chapters), len(result.AudioSegments))
	}

	log.Info("pipeline run finished", logger.Fields(
		"chapters", len(out.Chapters),
		logger.FieldDuration, time.Since(started).Milliseconds()))
	return out, nil
}

func (r *Runner) run(ctx context.Context, runID string, result *transcription.Result, log *logger.Logger) (*Output, error) {
	overview, err := r.stageOverview(ctx, result.Transcript)
	if err != nil {
		return nil, err
	}
	log.Info("topics identified", logger.Fields("topics", len(overview.Topics)))

	drafts, err := r.stageSections(ctx, result.Transcript, overview.Topics)
	if err != nil {
		return nil, err
	}

	chs, err := r.stageTimestamps(ctx, drafts, result.AudioSegments)
	if err != nil {
		return nil, err
	}

	r.stageEnrich(ctx, chs)

	return &Output{RunID: runID, Overview: overview, Chapters: chs}, nil
}

func (r *Runner) stageOverview(ctx context.Context, transcript string) (*chapters.Overview, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanOverview)
	defer span.End()

	overview, err := r.pipeline.ExtractOverview(ctx, transcript)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrTopics, len(overview.Topics))
	return overview, nil
}

func (r *Runner) stageSections(ctx context.Context, transcript string, topics []string) ([]chapters.ChapterDraft, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanSections)
	defer span.End()

	drafts, err := r.pipeline.ExtractSections(ctx, transcript, topics)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	return drafts, nil
}

func (r *Runner) stageTimestamps(ctx context.Context, drafts []chapters.ChapterDraft, segments []transcription.AudioSegment) ([]chapters.Chapter, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTimestamps)
	defer span.End()

	chs, err := r.pipeline.AssignTimestamps(ctx, drafts, segments)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	return chs, nil
}

func (r *Runner) stageEnrich(ctx context.Context, chs []chapters.Chapter) {
	ctx, span := observability.StartSpan(ctx, observability.SpanEnrich)
	defer span.End()

	r.pipeline.Enrich(ctx, chs)
}

func (r *Runner) recordRun(ctx context.Context, status string, started time.Time) {
	observability.SetSpanAttribute(ctx, observability.AttrStatus, status)
	if r.metrics != nil {
		r.metrics.RecordRun(ctx, status, time.Since(started))
	}
}
