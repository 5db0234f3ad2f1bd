package chapters

import "github.com/kbukum/chapterkit/transcription"

// Overview is the transcript-level result of the first oracle call: an
// ordered topic list plus an overall summary.
type Overview struct {
	// Summary is the whole-transcript summary.
	Summary string `json:"summary"`
	// Topics is ordered by appearance in the source material; the index of
	// a topic is the id of the chapter built from it.
	Topics []string `json:"topics"`
}

// ChapterDraft is a chapter before timestamp assignment: the topic and the
// verbatim transcript section extracted for it.
type ChapterDraft struct {
	// ID is the topic index and defines chapter ordering.
	ID int `json:"id"`
	// Title is the topic string.
	Title string `json:"title"`
	// Transcript is the contiguous transcript span extracted for the topic.
	Transcript string `json:"transcript"`
}

// Chapter is a fully assembled chapter: draft text plus time range, owned
// segments, and enrichment results.
type Chapter struct {
	ChapterDraft

	// StartTime and EndTime are the min start and max end over all owned
	// segments, in seconds.
	StartTime int `json:"start_time"`
	EndTime   int `json:"end_time"`

	// Segments are the audio segments assigned to this chapter, in time
	// order. Every input segment ends up in exactly one chapter.
	Segments []transcription.AudioSegment `json:"segments"`

	// Summary is the per-chapter summary; empty when generation failed and
	// the failure was skipped.
	Summary string `json:"summary,omitempty"`

	// Quiz holds the generated questions, one per taxonomy level that
	// parsed cleanly.
	Quiz []QuizQuestion `json:"quiz,omitempty"`
}

// QuizQuestion is one generated multiple-choice question.
type QuizQuestion struct {
	// Level is the cognitive-level description, e.g. "Remember (Knowledge)".
	Level string `json:"level"`
	// Question is the question text.
	Question string `json:"question"`
	// Choices holds the answer options in presentation order.
	Choices []string `json:"choices"`
	// Answer is the literal text of the correct choice, not an index.
	Answer string `json:"answer"`
}
