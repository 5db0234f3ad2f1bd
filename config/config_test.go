package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})

	t.Run("service name propagates into logging", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("Logging.ServiceName = %q, want %q", cfg.Logging.ServiceName, "svc")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", ServiceConfig{Name: "svc", Environment: "development"}, false, ""},
		{"valid staging", ServiceConfig{Name: "svc", Environment: "staging"}, false, ""},
		{"valid production", ServiceConfig{Name: "svc", Environment: "production"}, false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, true, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: chapterkit
environment: staging
oracle:
  provider: bedrock
  model: anthropic.claude-3-sonnet
  max_attempts: 5
  backoff_step: 2s
storage:
  provider: s3
  bucket: media
  region: us-west-2
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	if err := Load("chapterkit", cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Name != "chapterkit" || cfg.Environment != "staging" {
		t.Errorf("base = %q/%q", cfg.Name, cfg.Environment)
	}
	if cfg.Oracle.Provider != "bedrock" || cfg.Oracle.Model != "anthropic.claude-3-sonnet" {
		t.Errorf("oracle = %+v", cfg.Oracle)
	}
	if cfg.Oracle.MaxAttempts != 5 || cfg.Oracle.BackoffStep != 2*time.Second {
		t.Errorf("gateway = %+v", cfg.Oracle.GatewayConfig)
	}
	if cfg.Storage.Bucket != "media" || cfg.Storage.Region != "us-west-2" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("oracle:\n  model: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ORACLE_MODEL", "from-env")

	cfg := &Config{}
	if err := Load("chapterkit", cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Oracle.Model != "from-env" {
		t.Errorf("Oracle.Model = %q, want %q", cfg.Oracle.Model, "from-env")
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("ORACLE_MAX_ATTEMPTS")

	want := map[string]bool{
		"oracle_max_attempts": false,
		"oracle.max.attempts": false,
		"oracle.max_attempts": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("variant %q missing from %v", k, variants)
		}
	}
}

func TestConfigApplyDefaultsAndValidate(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Name != "chapterkit" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Oracle.Provider != "bedrock" {
		t.Errorf("Oracle.Provider = %q", cfg.Oracle.Provider)
	}
	if cfg.Oracle.MaxAttempts != 10 {
		t.Errorf("Oracle.MaxAttempts = %d", cfg.Oracle.MaxAttempts)
	}
	if cfg.Transcription.Provider != "awstranscribe" {
		t.Errorf("Transcription.Provider = %q", cfg.Transcription.Provider)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after defaults error = %v", err)
	}

	cfg.Oracle.Provider = "not-a-backend"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown oracle provider")
	}
}
