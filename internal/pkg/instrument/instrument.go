package instrument

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Instrumentation hands out tracers and meters to the rest of the app.
type Instrumentation interface {
	Tracer(name string) trace.Tracer
	Meter(name string) metric.Meter
	Shutdown(ctx context.Context) error
}

// Config drives OpenTelemetry initialization.
type Config struct {
	// Enabled toggles OpenTelemetry initialization entirely.
	Enabled bool
	// ServiceName is the service.name resource attribute.
	ServiceName string
	// ServiceVersion is the service.version resource attribute.
	ServiceVersion string
	// Environment names the deployment environment.
	Environment string
	// OTLPEndpoint is the OTLP gRPC collector endpoint.
	OTLPEndpoint string
	// OTLPSecure controls TLS on the exporter connections.
	OTLPSecure bool
	// TraceSampleRatio is the head sampling probability, clamped to [0, 1].
	TraceSampleRatio float64
	// MetricsInterval is the periodic metric export interval.
	MetricsInterval time.Duration
	// MaskFields lists log field names whose values are redacted. Passcode
	// and phone fields go here.
	MaskFields []string
}

type otelInstrumentation struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	loggerProvider *sdklog.LoggerProvider
}

// New builds OTLP-exporting providers for traces, metrics, and logs, and
// installs the slog bridge. Disabled config yields the noop implementation.
func New(ctx context.Context, cfg *Config) (Instrumentation, error) {
	if cfg == nil || !cfg.Enabled {
		return NewNoop(), nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("env", cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	traceOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	metricOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint)}
	logOpts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if !cfg.OTLPSecure {
		traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
		metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
		logOpts = append(logOpts, otlploggrpc.WithInsecure())
	}

	traceExporter, err := otlptracegrpc.New(ctx, traceOpts...)
	if err != nil {
		return nil, err
	}

	metricExporter, err := otlpmetricgrpc.New(ctx, metricOpts...)
	if err != nil {
		return nil, err
	}

	logExporter, err := otlploggrpc.New(ctx, logOpts...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(cfg.TraceSampleRatio)))),
		sdktrace.WithBatcher(traceExporter),
	)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(cfg.MetricsInterval))),
	)

	lp := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)

	initLogging(cfg.ServiceName, lp, cfg.MaskFields)

	return &otelInstrumentation{
		tracerProvider: tp,
		meterProvider:  mp,
		loggerProvider: lp,
	}, nil
}

func clampRatio(ratio float64) float64 {
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

func (o *otelInstrumentation) Tracer(name string) trace.Tracer {
	return o.tracerProvider.Tracer(name)
}

func (o *otelInstrumentation) Meter(name string) metric.Meter {
	return o.meterProvider.Meter(name)
}

// Shutdown flushes and stops all three providers, joining their errors.
func (o *otelInstrumentation) Shutdown(ctx context.Context) error {
	return errors.Join(
		o.tracerProvider.Shutdown(ctx),
		o.meterProvider.Shutdown(ctx),
		o.loggerProvider.Shutdown(ctx),
	)
}

// NewNoop returns a no-op implementation suitable for unit tests.
func NewNoop() Instrumentation {
	return &noopInstrumentation{
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
	}
}

type noopInstrumentation struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

func (n *noopInstrumentation) Tracer(name string) trace.Tracer {
	return n.tracerProvider.Tracer(name)
}

func (n *noopInstrumentation) Meter(name string) metric.Meter {
	return n.meterProvider.Meter(name)
}

func (n *noopInstrumentation) Shutdown(context.Context) error {
	return nil
}
