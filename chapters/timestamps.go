package chapters

import (
	"context"
	"strings"

	"github.com/kbukum/chapterkit/errors"
	"github.com/kbukum/chapterkit/fanout"
	"github.com/kbukum/chapterkit/logger"
	"github.com/kbukum/chapterkit/tags"
	"github.com/kbukum/chapterkit/transcription"
)

// AssignTimestamps maps the time-ordered segment sequence onto the chapter
// drafts and derives each chapter's time range.
//
// Chapters are processed strictly sequentially; the unassigned-segment pool
// is owned by this goroutine and only batch classification fans out. Per
// chapter, batches of segments are popped from the front of the pool and
// classified concurrently; a watershed rule decides how much of each batch
// the chapter keeps, and a density threshold decides when the chapter stops
// consuming. The last chapter absorbs whatever the threshold left behind,
// so every input segment ends up in exactly one chapter.
func (p *Pipeline) AssignTimestamps(ctx context.Context, drafts []ChapterDraft, segments []transcription.AudioSegment) ([]Chapter, error) {
	pool := make([]transcription.AudioSegment, len(segments))
	copy(pool, segments)

	chapters := make([]Chapter, 0, len(drafts))
	for ci, draft := range drafts {
		var owned []transcription.AudioSegment

		for len(pool) > 0 {
			n := min(p.cfg.BatchSize, len(pool))
			batch := pool[:n]
			pool = pool[n:]

			isMember, err := fanout.Map(ctx, batch, p.cfg.Width, func(ctx context.Context, _ int, seg transcription.AudioSegment) (bool, error) {
				return p.classifySegment(ctx, draft, seg)
			})
			if err != nil {
				return nil, err
			}

			// Watershed: the last positive classification is the
			// authoritative right edge; earlier false negatives inside the
			// true region are absorbed.
			w := -1
			for i, member := range isMember {
				if member {
					w = i
				}
			}

			owned = append(owned, batch[:w+1]...)

			// Rejected segments go back to the front, order preserved, so
			// the next batch (same or next chapter) sees them first.
			if w+1 < n {
				rest := make([]transcription.AudioSegment, 0, (n-w-1)+len(pool))
				rest = append(rest, batch[w+1:]...)
				pool = append(rest, pool...)
			}

			density := float64(w+1) / float64(n)
			p.log.Debug("batch classified", logger.Fields(
				logger.FieldChapterID, draft.ID,
				logger.FieldBatch, n,
				"in_chapter", w+1,
				"density", density,
			))
			if density < p.cfg.DensityThreshold {
				break
			}
		}

		// The last chapter absorbs every unclaimed segment; no segment is
		// ever discarded.
		if ci == len(drafts)-1 && len(pool) > 0 {
			owned = append(owned, pool...)
			pool = nil
		}

		if len(owned) == 0 {
			return nil, errors.EmptySegmentSet(draft.ID)
		}

		start, end := timeRange(owned)
		chapters = append(chapters, Chapter{
			ChapterDraft: draft,
			StartTime:    start,
			EndTime:      end,
			Segments:     owned,
		})
	}

	return chapters, nil
}

// classifySegment asks the oracle whether the segment's text appears in the
// chapter's extracted transcript. A missing or unparseable answer counts as
// "no": membership noise is what the watershed rule exists to absorb.
func (p *Pipeline) classifySegment(ctx context.Context, draft ChapterDraft, seg transcription.AudioSegment) (bool, error) {
	out, err := p.oracle.CompleteText(ctx, membershipPrompt(draft.Transcript, seg.Text))
	if err != nil {
		return false, err
	}

	ans, _ := tags.Extract(out, "ans")
	if ans == "" {
		p.log.Warn("membership answer missing, treating as no", logger.Fields(
			logger.FieldChapterID, draft.ID,
			logger.FieldSegmentID, seg.ID,
			logger.FieldTag, "ans",
		))
		return false, nil
	}
	return strings.Contains(strings.ToLower(ans), "yes"), nil
}

// timeRange returns the min start and max end over the given segments.
func timeRange(segments []transcription.AudioSegment) (start, end int) {
	start = segments[0].StartTime
	end = segments[0].EndTime
	for _, s := range segments[1:] {
		if s.StartTime < start {
			start = s.StartTime
		}
		if s.EndTime > end {
			end = s.EndTime
		}
	}
	return start, end
}
