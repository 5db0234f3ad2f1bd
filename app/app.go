package app

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/chapterkit/chapters"
	"github.com/kbukum/chapterkit/config"
	"github.com/kbukum/chapterkit/errors"
	"github.com/kbukum/chapterkit/llm"
	"github.com/kbukum/chapterkit/logger"
	"github.com/kbukum/chapterkit/observability"
	"github.com/kbukum/chapterkit/process"
	"github.com/kbukum/chapterkit/storage"
	"github.com/kbukum/chapterkit/transcription"

	// Backends register themselves with their package registries.
	_ "github.com/kbukum/chapterkit/llm/bedrock"
	_ "github.com/kbukum/chapterkit/llm/ollama"
	_ "github.com/kbukum/chapterkit/storage/local"
	_ "github.com/kbukum/chapterkit/storage/s3"
	_ "github.com/kbukum/chapterkit/transcription/awstranscribe"
	_ "github.com/kbukum/chapterkit/transcription/whisper"
)

// App wires configuration into a ready-to-use pipeline: oracle gateway,
// transcription provider, storage-backed artifact store and the runner.
type App struct {
	Config      *config.Config
	Log         *logger.Logger
	Gateway     *llm.Gateway
	Transcriber transcription.Provider
	Runner      *process.Runner
	Store       *process.Store

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// New builds an App from an already-loaded configuration. Defaults are
// applied and the configuration is validated before any component is
// constructed.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	a := &App{Config: cfg, Log: log}

	if err := a.initTelemetry(ctx, cfg); err != nil {
		return nil, err
	}

	backend, err := llm.Registry.Create(cfg.Oracle.Provider, cfg.Oracle.Settings)
	if err != nil {
		return nil, errors.Internal(err)
	}
	a.Gateway = llm.NewGateway(backend, cfg.Oracle.GatewayConfig, log)

	a.Transcriber, err = transcription.Registry.Create(cfg.Transcription.Provider, cfg.Transcription.Settings)
	if err != nil {
		return nil, errors.Internal(err)
	}

	store, err := storage.New(cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	a.Store = process.NewStore(store, log)

	var metrics *observability.PipelineMetrics
	if cfg.Telemetry.Enabled {
		metrics, err = observability.NewPipelineMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return nil, errors.Internal(err)
		}
	}

	pipeline := chapters.NewPipeline(a.Gateway, cfg.Chapters, log)
	a.Runner = process.NewRunner(pipeline, metrics, log)

	log.Info("application wired", logger.Fields(
		"oracle", cfg.Oracle.Provider,
		"transcription", cfg.Transcription.Provider,
		"storage", cfg.Storage.Provider))
	return a, nil
}

// Load reads configuration from config.yml / environment and builds the App.
func Load(ctx context.Context, opts ...config.LoaderOption) (*App, error) {
	cfg, err := config.LoadApp(opts...)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}

// Run executes the pipeline over a transcription result and persists the
// output artifacts.
func (a *App) Run(ctx context.Context, result *transcription.Result) (*process.Output, error) {
	return a.Runner.RunAndStore(ctx, result, a.Store)
}

func (a *App) initTelemetry(ctx context.Context, cfg *config.Config) error {
	if !cfg.Telemetry.Enabled {
		return nil
	}
	svc := observability.ServiceInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	}
	tp, err := observability.InitTracer(ctx, cfg.Telemetry, svc)
	if err != nil {
		return errors.Internal(err)
	}
	a.tracerProvider = tp

	mp, err := observability.InitMeter(ctx, cfg.Telemetry, svc)
	if err != nil {
		return errors.Internal(err)
	}
	a.meterProvider = mp
	return nil
}

// Shutdown flushes telemetry exporters. Safe to call when telemetry is
// disabled.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if a.meterProvider != nil {
		if err := a.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
