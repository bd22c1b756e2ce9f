// internal/common/observability/tracing.go
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"wedding-matching-workers/internal/common/config"
	"wedding-matching-workers/internal/common/logger"
)

// ShutdownFunc flushes and stops a telemetry provider.
type ShutdownFunc func(ctx context.Context) error

// InitTracing installs a global tracer provider exporting to Jaeger. With no
// endpoint configured the global no-op provider stays in place.
func InitTracing(cfg config.ObservabilityConfig, version string, log logger.Logger) (ShutdownFunc, error) {
	if cfg.JaegerEndpoint == "" {
		log.Info("tracing disabled, no jaeger endpoint configured", nil)
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
	if err != nil {
		return nil, fmt.Errorf("create jaeger exporter: %w", err)
	}

	provider := NewTracerProvider(cfg, version, sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)

	log.Info("tracing enabled", map[string]interface{}{
		"endpoint":    cfg.JaegerEndpoint,
		"sampleRatio": cfg.SampleRatio,
	})
	return provider.Shutdown, nil
}

// NewTracerProvider builds a provider tagged with the service name and version.
func NewTracerProvider(cfg config.ObservabilityConfig, version string, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", version),
	)

	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}, opts...)
	return sdktrace.NewTracerProvider(opts...)
}
