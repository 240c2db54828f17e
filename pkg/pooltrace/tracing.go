// Package pooltrace provides OpenTelemetry tracing of pool lifecycle events
// (Take, Put, Prune), condensed from the observability bundle this codebase
// otherwise uses for full pipeline tracing down to just what a pooling
// library needs traced.
package pooltrace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer   trace.Tracer
	meter    metric.Meter
	initOnce sync.Once
)

// Config controls the tracer provider created by Init.
type Config struct {
	ServiceName  string
	SamplingRate float64 // 0 disables tracing, 1 traces every event
}

// Init sets up the global tracer used by StartSpan. Safe to call more than
// once; only the first call takes effect.
func Init(cfg Config) error {
	var err error
	initOnce.Do(func() {
		err = initTracing(cfg)
	})
	return err
}

func initTracing(cfg Config) error {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case cfg.SamplingRate <= 0:
		sampler = sdktrace.NeverSample()
	case cfg.SamplingRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SamplingRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(time.Second),
			sdktrace.WithMaxExportBatchSize(512),
		),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(cfg.ServiceName)

	// poolmetrics already covers instrumentation via Prometheus; this meter
	// exists so a caller that wires poolshark into an OTel-only pipeline has
	// something to attach instruments to without reaching into this package.
	meter = otel.Meter(cfg.ServiceName)
	return nil
}

func getTracer() trace.Tracer {
	if tracer == nil {
		_ = Init(Config{ServiceName: "poolshark", SamplingRate: 0})
	}
	return tracer
}

// GetMeter returns the global OpenTelemetry meter, initializing it with
// tracing disabled if Init has not been called yet.
func GetMeter() metric.Meter {
	if meter == nil {
		_ = Init(Config{ServiceName: "poolshark", SamplingRate: 0})
	}
	return meter
}

// StartSpan starts a span for a pool operation (take/put/prune), labeled
// with the pool name only.
func StartSpan(ctx context.Context, operation, poolName string) (context.Context, trace.Span) {
	return getTracer().Start(ctx, operation,
		trace.WithAttributes(attribute.String("pool.name", poolName)))
}
