package app

import (
	"context"
	"testing"

	"github.com/kbukum/chapterkit/config"
	"github.com/kbukum/chapterkit/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ServiceConfig: config.ServiceConfig{Name: "chapterkit-test"},
		Oracle: config.OracleConfig{
			Provider: "ollama",
			Settings: map[string]any{"base_url": "http://localhost:11434", "model": "llama3"},
		},
		Transcription: config.TranscriptionConfig{
			Provider: "whisper",
			Settings: map[string]any{"url": "http://localhost:9000"},
		},
		Storage: storage.Config{Provider: storage.ProviderLocal, BasePath: t.TempDir()},
	}
}

func TestNew(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.Gateway == nil || a.Transcriber == nil || a.Runner == nil || a.Store == nil {
		t.Errorf("incomplete wiring: %+v", a)
	}
	if got := a.Transcriber.Name(); got != "whisper" {
		t.Errorf("Transcriber.Name() = %q", got)
	}
	if err := a.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Oracle.Provider = "gpt-sidecar"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("New() accepted an unknown oracle provider")
	}
}

func TestNewInvalidStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Provider = "ftp"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("New() accepted an unknown storage provider")
	}
}
