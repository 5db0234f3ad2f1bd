package whisper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/chapterkit/transcription"
)

func TestToResult(t *testing.T) {
	resp := &whisperResponse{
		Text: "hello world again",
		Segments: []whisperSegment{
			{Text: "hello", Start: 0.0, End: 2.8},
			{Text: "world", Start: 2.9, End: 5.4},
			{Text: "again", Start: 5.5, End: 7.1},
		},
	}

	result := toResult(resp)
	if result.Transcript != "hello world again" {
		t.Errorf("Transcript = %q", result.Transcript)
	}

	want := []transcription.AudioSegment{
		{ID: 0, StartTime: 0, EndTime: 2, Text: "hello"},
		{ID: 1, StartTime: 2, EndTime: 5, Text: "world"},
		{ID: 2, StartTime: 5, EndTime: 7, Text: "again"},
	}
	if len(result.AudioSegments) != len(want) {
		t.Fatalf("len(AudioSegments) = %d, want %d", len(result.AudioSegments), len(want))
	}
	for i, seg := range result.AudioSegments {
		if seg != want[i] {
			t.Errorf("segment[%d] = %+v, want %+v", i, seg, want[i])
		}
	}
}

func TestJobLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(whisperResponse{
			Text:     "some words",
			Segments: []whisperSegment{{Text: "some words", Start: 0, End: 3.2}},
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	audioPath := filepath.Join(dir, "run-1", "clip.wav")
	if err := os.MkdirAll(filepath.Dir(audioPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(audioPath, []byte("fake audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProvider(Config{URL: srv.URL})
	ctx := context.Background()

	jobName, err := p.StartJob(ctx, transcription.JobRequest{Bucket: dir, ObjectKey: "run-1/clip.wav"})
	if err != nil {
		t.Fatalf("StartJob() error = %v", err)
	}

	status, err := p.Status(ctx, jobName)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status != transcription.StatusCompleted {
		t.Errorf("status = %s, want %s", status, transcription.StatusCompleted)
	}

	result, err := p.FetchResult(ctx, jobName)
	if err != nil {
		t.Fatalf("FetchResult() error = %v", err)
	}
	if result.Transcript != "some words" {
		t.Errorf("Transcript = %q", result.Transcript)
	}

	if _, err := p.FetchResult(ctx, "no-such-job"); err == nil {
		t.Error("FetchResult for unknown job: expected error")
	}
}
