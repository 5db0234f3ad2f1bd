package chapters

import (
	"context"

	"github.com/kbukum/chapterkit/errors"
	"github.com/kbukum/chapterkit/fanout"
	"github.com/kbukum/chapterkit/logger"
	"github.com/kbukum/chapterkit/tags"
)

// ExtractSections asks the oracle, once per topic, for the contiguous
// transcript span most relevant to that topic. Calls run concurrently with
// bounded width; results come back in topic order regardless of completion
// order. A single failed extraction fails the whole stage, since every
// later stage structurally requires each chapter to have a text.
func (p *Pipeline) ExtractSections(ctx context.Context, transcript string, topics []string) ([]ChapterDraft, error) {
	return fanout.Map(ctx, topics, p.cfg.Width, func(ctx context.Context, i int, topic string) (ChapterDraft, error) {
		out, err := p.oracle.CompleteText(ctx, sectionPrompt(transcript, topic))
		if err != nil {
			return ChapterDraft{}, err
		}

		section, _ := tags.Extract(out, "section")
		if section == "" {
			p.log.Error("section extraction produced no content", logger.Fields(
				logger.FieldChapterID, i,
				logger.FieldTopic, topic,
			))
			return ChapterDraft{}, errors.MalformedOutput("section")
		}

		return ChapterDraft{
			ID:         i,
			Title:      topic,
			Transcript: section,
		}, nil
	})
}
