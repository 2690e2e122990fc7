package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Observability records per-tool invocation metrics through OpenTelemetry,
// exported on the Prometheus registry, and opens one span per invocation.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	tracer         trace.Tracer
	toolCounter    otelmetric.Int64Counter
	toolDuration   otelmetric.Float64Histogram
}

func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	toolCounter, err := meter.Int64Counter(
		"tools.invocations",
		otelmetric.WithDescription("Number of tool invocations"),
	)
	if err != nil {
		return &Observability{}, err
	}

	toolDuration, err := meter.Float64Histogram(
		"tools.duration",
		otelmetric.WithDescription("Tool invocation duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return &Observability{}, err
	}

	tracerProvider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tracerProvider)

	return &Observability{
		meterProvider:  provider,
		tracerProvider: tracerProvider,
		meter:          meter,
		tracer:         tracerProvider.Tracer(serviceName),
		toolCounter:    toolCounter,
		toolDuration:   toolDuration,
	}, nil
}

// StartSpan opens a span for one tool invocation. Without a tracer the span
// is a no-op.
func (o *Observability) StartSpan(ctx context.Context, tool string, jobKey int64) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return o.tracer.Start(ctx, tool, trace.WithAttributes(
		attribute.String("tool", tool),
		attribute.Int64("job.key", jobKey),
	))
}

// EndSpan records the outcome on span and ends it.
func EndSpan(span trace.Span, code string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// RecordInvocation counts one tool invocation and its duration. A zero
// Observability is a valid no-op recorder.
func (o *Observability) RecordInvocation(ctx context.Context, tool, status string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("status", status),
	)
	if o.toolCounter != nil {
		o.toolCounter.Add(ctx, 1, attrs)
	}
	if o.toolDuration != nil {
		o.toolDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	if o.meterProvider != nil {
		return o.meterProvider.Shutdown(ctx)
	}
	return nil
}
