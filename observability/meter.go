package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMeter initializes the OpenTelemetry meter provider. The returned
// provider should be shut down on application exit.
func InitMeter(ctx context.Context, cfg Config, svc ServiceInfo) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(svc)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// PipelineMetrics holds metric instruments for pipeline runs.
type PipelineMetrics struct {
	runTotal         metric.Int64Counter
	runDuration      metric.Float64Histogram
	chaptersProduced metric.Int64Counter
	segmentsAssigned metric.Int64Counter
	unitsDropped     metric.Int64Counter
}

// NewPipelineMetrics creates pipeline metric instruments on the given meter.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	runTotal, err := meter.Int64Counter("pipeline.runs",
		metric.WithDescription("Total pipeline runs by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.runs counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("pipeline.run.duration",
		metric.WithDescription("Duration of pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.run.duration histogram: %w", err)
	}

	chaptersProduced, err := meter.Int64Counter("pipeline.chapters",
		metric.WithDescription("Total chapters produced"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.chapters counter: %w", err)
	}

	segmentsAssigned, err := meter.Int64Counter("pipeline.segments.assigned",
		metric.WithDescription("Total audio segments assigned to chapters"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.segments.assigned counter: %w", err)
	}

	unitsDropped, err := meter.Int64Counter("pipeline.units.dropped",
		metric.WithDescription("Enrichment units dropped due to malformed oracle output"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.units.dropped counter: %w", err)
	}

	return &PipelineMetrics{
		runTotal:         runTotal,
		runDuration:      runDuration,
		chaptersProduced: chaptersProduced,
		segmentsAssigned: segmentsAssigned,
		unitsDropped:     unitsDropped,
	}, nil
}

// RecordRun records a completed pipeline run.
func (m *PipelineMetrics) RecordRun(ctx context.Context, status string, duration time.Duration) {
	m.runTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	m.runDuration.Record(ctx, duration.Seconds())
}

// RecordChapters records the chapters and assigned segments of a run.
func (m *PipelineMetrics) RecordChapters(ctx context.Context, chapters, segments int) {
	m.chaptersProduced.Add(ctx, int64(chapters))
	m.segmentsAssigned.Add(ctx, int64(segments))
}

// RecordDrop records an enrichment unit dropped for the given reason.
func (m *PipelineMetrics) RecordDrop(ctx context.Context, unit, reason string) {
	m.unitsDropped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("unit", unit),
		attribute.String("reason", reason),
	))
}
