package transcription

import (
	"strings"
	"testing"
)

const sampleDocument = `{
	"results": {
		"transcripts": [{"transcript": "hello world this is a talk"}],
		"audio_segments": [
			{"id": 1, "start_time": "5.12", "end_time": "9.99", "transcript": "this is"},
			{"id": 0, "start_time": "0.0", "end_time": "4.5", "transcript": "hello world"},
			{"id": 2, "start_time": "10.0", "end_time": "12.75", "transcript": "a talk"}
		]
	}
}`

func TestDecodeResult(t *testing.T) {
	result, err := DecodeResult(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("DecodeResult() error = %v", err)
	}

	if result.Transcript != "hello world this is a talk" {
		t.Errorf("Transcript = %q", result.Transcript)
	}
	if len(result.AudioSegments) != 3 {
		t.Fatalf("len(AudioSegments) = %d, want 3", len(result.AudioSegments))
	}

	// Sorted by start time, fractions truncated.
	want := []AudioSegment{
		{ID: 0, StartTime: 0, EndTime: 4, Text: "hello world"},
		{ID: 1, StartTime: 5, EndTime: 9, Text: "this is"},
		{ID: 2, StartTime: 10, EndTime: 12, Text: "a talk"},
	}
	for i, seg := range result.AudioSegments {
		if seg != want[i] {
			t.Errorf("segment[%d] = %+v, want %+v", i, seg, want[i])
		}
	}
}

func TestDecodeResultErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{not json`},
		{"no transcripts", `{"results": {"transcripts": [], "audio_segments": []}}`},
		{"bad timestamp", `{
			"results": {
				"transcripts": [{"transcript": "x"}],
				"audio_segments": [{"id": 0, "start_time": "abc", "end_time": "1.0", "transcript": "x"}]
			}
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeResult(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"12.345", 12, false},
		{"0.0", 0, false},
		{"99.999", 99, false},
		{"7", 7, false},
		{"", 0, true},
		{"x.5", 0, true},
	}

	for _, tt := range tests {
		got, err := Seconds(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Seconds(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Seconds(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestJobStatusDone(t *testing.T) {
	if StatusQueued.Done() || StatusInProgress.Done() {
		t.Error("non-terminal status reported done")
	}
	if !StatusCompleted.Done() || !StatusFailed.Done() {
		t.Error("terminal status not reported done")
	}
}
