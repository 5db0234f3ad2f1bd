package chapters

import (
	"context"
	"slices"

	"github.com/kbukum/chapterkit/fanout"
	"github.com/kbukum/chapterkit/logger"
	"github.com/kbukum/chapterkit/tags"
)

// Enrich generates a quiz and a summary for every chapter, each family as a
// bounded fan-out across chapters. Per-chapter failures are logged and
// skipped: one chapter's bad oracle output never aborts its siblings, and
// the affected chapter simply ships without that enrichment.
func (p *Pipeline) Enrich(ctx context.Context, chapters []Chapter) {
	p.GenerateQuizzes(ctx, chapters)
	p.Summarize(ctx, chapters)
}

// GenerateQuizzes asks the oracle for one six-level multiple-choice quiz per
// chapter and attaches the question blocks that parsed cleanly.
func (p *Pipeline) GenerateQuizzes(ctx context.Context, chapters []Chapter) {
	fanout.Each(ctx, chapters, p.cfg.Width, func(ctx context.Context, i int, c Chapter) {
		out, err := p.oracle.CompleteText(ctx, quizPrompt(c.Title, c.Transcript))
		if err != nil {
			p.log.WithError(err).Error("quiz generation failed", logger.Fields(
				logger.FieldChapterID, c.ID,
			))
			return
		}
		chapters[i].Quiz = p.parseQuiz(c.ID, out)
	})
}

// Summarize asks the oracle for a per-chapter summary.
func (p *Pipeline) Summarize(ctx context.Context, chapters []Chapter) {
	fanout.Each(ctx, chapters, p.cfg.Width, func(ctx context.Context, i int, c Chapter) {
		out, err := p.oracle.CompleteText(ctx, summaryPrompt(c.Title, c.Transcript))
		if err != nil {
			p.log.WithError(err).Error("summary generation failed", logger.Fields(
				logger.FieldChapterID, c.ID,
			))
			return
		}

		summary, _ := tags.Extract(out, "summary")
		if summary == "" {
			p.log.Warn("summary dropped", logger.Fields(
				logger.FieldChapterID, c.ID,
				logger.FieldDropReason, "missing summary tag",
			))
			return
		}
		chapters[i].Summary = summary
	})
}

// parseQuiz extracts quiz blocks from the oracle's output. A block missing
// its level, question, or answer, or with no parseable options, is dropped
// with a logged reason rather than retried.
func (p *Pipeline) parseQuiz(chapterID int, text string) []QuizQuestion {
	var questions []QuizQuestion

	rest := text
	for rest != "" {
		var block string
		block, rest = tags.Extract(rest, "quiz")
		if block == "" {
			continue
		}

		level, _ := tags.Extract(block, "lvl")
		question, _ := tags.Extract(block, "qn")
		choicesBlock, _ := tags.Extract(block, "choices")
		answer, _ := tags.Extract(block, "ans")
		options := tags.ExtractAll(choicesBlock, "opt")

		if reason := quizBlockDefect(level, question, answer, options); reason != "" {
			p.log.Warn("quiz block dropped", logger.Fields(
				logger.FieldChapterID, chapterID,
				logger.FieldQuizLevel, level,
				logger.FieldDropReason, reason,
			))
			continue
		}

		// Tolerated, not enforced: the model occasionally answers with text
		// matching no choice.
		if !slices.Contains(options, answer) {
			p.log.Warn("quiz answer not among choices", logger.Fields(
				logger.FieldChapterID, chapterID,
				logger.FieldQuizLevel, level,
			))
		}

		questions = append(questions, QuizQuestion{
			Level:    level,
			Question: question,
			Choices:  options,
			Answer:   answer,
		})
	}

	return questions
}

func quizBlockDefect(level, question, answer string, options []string) string {
	switch {
	case level == "":
		return "missing lvl tag"
	case question == "":
		return "missing qn tag"
	case answer == "":
		return "missing ans tag"
	case len(options) == 0:
		return "no options parsed"
	default:
		return ""
	}
}
