// Package otel wires OpenTelemetry tracing for crumbtrail commands.
package otel

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/crumbtrail/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config controls trace export. Tags are read with config.EnvPrefix.
type Config struct {
	Endpoint    string  `env:"OTEL_ENDPOINT"`
	Enabled     bool    `env:"OTEL_ENABLED" envDefault:"true"`
	SampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Active reports whether spans should be exported.
func (c Config) Active() bool {
	return c.Enabled && strings.TrimSpace(c.Endpoint) != ""
}

func (c Config) sampler() sdktrace.Sampler {
	if c.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.SampleRatio))
}

// Setup initialises tracing for serviceName from the environment.
//
// Tracing is opt-in: when CRUMBTRAIL_OTEL_ENDPOINT is empty or
// CRUMBTRAIL_OTEL_ENABLED is false, Setup returns a no-op shutdown and the
// global no-op provider stays in place.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	var cfg Config
	if err := config.ParseEnvPrefixed(&cfg); err != nil {
		return noop, err
	}
	return SetupWithConfig(ctx, serviceName, cfg)
}

// SetupWithConfig is Setup with an explicit configuration.
func SetupWithConfig(ctx context.Context, serviceName string, cfg Config) (func(context.Context) error, error) {
	if !cfg.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(cfg.sampler()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func noop(context.Context) error { return nil }
