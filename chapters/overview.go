package chapters

import (
	"context"

	"github.com/kbukum/chapterkit/errors"
	"github.com/kbukum/chapterkit/logger"
	"github.com/kbukum/chapterkit/tags"
)

// ExtractOverview asks the oracle for the transcript's topic list and
// overall summary in a single call. Topics keep their order of appearance;
// the index of a topic becomes the id of the chapter built from it.
func (p *Pipeline) ExtractOverview(ctx context.Context, transcript string) (*Overview, error) {
	out, err := p.oracle.CompleteText(ctx, overviewPrompt(transcript))
	if err != nil {
		return nil, err
	}

	summary, _ := tags.Extract(out, "summary")
	if summary == "" {
		return nil, errors.MalformedOutput("summary")
	}

	topics := tags.ExtractAll(out, "topic")
	if len(topics) == 0 {
		return nil, errors.MalformedOutput("topic")
	}

	p.log.Info("overview extracted", logger.Fields("topics", len(topics)))

	return &Overview{
		Summary: summary,
		Topics:  topics,
	}, nil
}
