// Package whisper implements transcription.Provider using a faster-whisper
// HTTP sidecar. The sidecar transcribes synchronously, so the job lifecycle
// is emulated: StartJob blocks until the sidecar responds and the result is
// cached under a generated job name.
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/chapterkit/errors"
	"github.com/kbukum/chapterkit/provider"
	"github.com/kbukum/chapterkit/transcription"
)

// ProviderName is the registered name for the Whisper provider.
const ProviderName = "whisper"

const (
	defaultWhisperURL     = "http://localhost:8387"
	defaultWhisperModel   = "base"
	defaultWhisperTimeout = 120 * time.Second
)

func init() {
	transcription.RegisterFactory(ProviderName, Factory())
}

// Config holds configuration for the Whisper transcription backend.
type Config struct {
	URL      string        `json:"url" yaml:"url"`
	Model    string        `json:"model" yaml:"model"`
	Language string        `json:"language,omitempty" yaml:"language"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// Provider implements transcription.Provider using a faster-whisper HTTP
// sidecar. For this backend the job request's Bucket is a local base
// directory and ObjectKey a path below it.
type Provider struct {
	cfg    Config
	client *http.Client

	mu      sync.Mutex
	results map[string]*transcription.Result
}

// NewProvider creates a new Whisper transcription backend.
func NewProvider(cfg Config) *Provider {
	if cfg.URL == "" {
		cfg.URL = defaultWhisperURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultWhisperModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultWhisperTimeout
	}
	return &Provider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		results: make(map[string]*transcription.Result),
	}
}

// Factory returns a provider.Factory that creates Whisper Provider
// instances from a generic config map.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		wc := Config{}
		if v, ok := cfg["url"].(string); ok {
			wc.URL = v
		}
		if v, ok := cfg["model"].(string); ok {
			wc.Model = v
		}
		if v, ok := cfg["language"].(string); ok {
			wc.Language = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			wc.Timeout = v
		}
		return NewProvider(wc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Whisper sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL+"/health", http.NoBody)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// StartJob sends the audio file to the sidecar, waits for the transcription,
// and caches the result under a fresh job name.
func (p *Provider) StartJob(ctx context.Context, req transcription.JobRequest) (string, error) {
	jobName := uuid.NewString()

	result, err := p.transcribe(ctx, filepath.Join(req.Bucket, req.ObjectKey), req.Language)
	if err != nil {
		return "", errors.TranscriptionError(jobName, err)
	}

	p.mu.Lock()
	p.results[jobName] = result
	p.mu.Unlock()
	return jobName, nil
}

// Status reports COMPLETED for any known job; the sidecar has no
// intermediate states.
func (p *Provider) Status(_ context.Context, jobName string) (transcription.JobStatus, error) {
	p.mu.Lock()
	_, ok := p.results[jobName]
	p.mu.Unlock()
	if !ok {
		return transcription.StatusFailed, errors.TranscriptionError(jobName, fmt.Errorf("unknown job"))
	}
	return transcription.StatusCompleted, nil
}

// FetchResult returns the cached transcription for the named job.
func (p *Provider) FetchResult(_ context.Context, jobName string) (*transcription.Result, error) {
	p.mu.Lock()
	result, ok := p.results[jobName]
	p.mu.Unlock()
	if !ok {
		return nil, errors.TranscriptionError(jobName, fmt.Errorf("unknown job"))
	}
	return result, nil
}

func (p *Provider) transcribe(ctx context.Context, audioPath, language string) (*transcription.Result, error) {
	audioData, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	lang := p.cfg.Language
	if language != "" {
		lang = language
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audioData); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}

	_ = writer.WriteField("model", p.cfg.Model)
	if lang != "" {
		_ = writer.WriteField("language", lang)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL+"/transcribe", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("whisper error (status %d): %s", resp.StatusCode, string(body))
	}

	var result whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode whisper response: %w", err)
	}

	return toResult(&result), nil
}

// --- internal Whisper API response types ---

type whisperResponse struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
}

type whisperSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// toResult converts the sidecar's float-second segments to whole-second
// AudioSegments, with IDs assigned by source order.
func toResult(resp *whisperResponse) *transcription.Result {
	segments := make([]transcription.AudioSegment, len(resp.Segments))
	for i, seg := range resp.Segments {
		segments[i] = transcription.AudioSegment{
			ID:        i,
			StartTime: int(seg.Start),
			EndTime:   int(seg.End),
			Text:      seg.Text,
		}
	}

	return &transcription.Result{
		Transcript:    resp.Text,
		AudioSegments: segments,
	}
}
