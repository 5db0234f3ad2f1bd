package transcription

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/kbukum/chapterkit/errors"
)

// Raw document shape emitted by Amazon Transcribe batch jobs. Timestamps
// arrive as decimal-second strings ("12.345").
type rawDocument struct {
	Results rawResults `json:"results"`
}

type rawResults struct {
	Transcripts   []rawTranscript `json:"transcripts"`
	AudioSegments []rawSegment    `json:"audio_segments"`
}

type rawTranscript struct {
	Transcript string `json:"transcript"`
}

type rawSegment struct {
	ID         int    `json:"id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Transcript string `json:"transcript"`
}

// DecodeResult parses a raw Amazon Transcribe output document into a Result.
// Fractional seconds are truncated, and segments are sorted by start time.
func DecodeResult(r io.Reader) (*Result, error) {
	var doc rawDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.TranscriptionError("decode transcript document", err)
	}

	if len(doc.Results.Transcripts) == 0 {
		return nil, errors.TranscriptionError("transcript document has no transcripts", nil)
	}

	segments := make([]AudioSegment, 0, len(doc.Results.AudioSegments))
	for _, s := range doc.Results.AudioSegments {
		start, err := Seconds(s.StartTime)
		if err != nil {
			return nil, errors.TranscriptionError(fmt.Sprintf("segment %d start_time", s.ID), err)
		}
		end, err := Seconds(s.EndTime)
		if err != nil {
			return nil, errors.TranscriptionError(fmt.Sprintf("segment %d end_time", s.ID), err)
		}
		segments = append(segments, AudioSegment{
			ID:        s.ID,
			StartTime: start,
			EndTime:   end,
			Text:      s.Transcript,
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].StartTime < segments[j].StartTime
	})

	return &Result{
		Transcript:    doc.Results.Transcripts[0].Transcript,
		AudioSegments: segments,
	}, nil
}

// Seconds extracts the whole-second value from a decimal-second timestamp
// string such as "12.345", truncating the fraction.
func Seconds(timestamp string) (int, error) {
	whole, _, found := strings.Cut(timestamp, ".")
	if !found {
		whole = timestamp
	}
	n, err := strconv.Atoi(whole)
	if err != nil {
		return 0, fmt.Errorf("parse timestamp %q: %w", timestamp, err)
	}
	return n, nil
}
