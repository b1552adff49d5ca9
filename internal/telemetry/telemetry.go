// Package telemetry provides OpenTelemetry tracing for the game server.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const shutdownTimeout = 5 * time.Second

// Provider installs a global tracer provider for as long as it runs.
// A Provider without an endpoint leaves otel's no-op provider in place.
type Provider struct {
	endpoint    string
	serviceName string
	replica     string
}

// NewProvider creates a Provider exporting to endpoint. An empty endpoint disables export.
func NewProvider(endpoint, serviceName, replica string) *Provider {
	return &Provider{
		endpoint:    endpoint,
		serviceName: serviceName,
		replica:     replica,
	}
}

// Start installs the tracer provider and flushes it when ctx is canceled.
func (p *Provider) Start(ctx context.Context) error {
	if p.endpoint == "" {
		<-ctx.Done()
		return nil
	}

	tp, err := p.setup(ctx)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "exporting traces", "endpoint", p.endpoint)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := tp.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down tracer provider: %w", err)
	}
	return nil
}

func (p *Provider) setup(ctx context.Context) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(p.endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("creating otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", p.serviceName),
			attribute.String("service.instance.id", p.replica),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("building resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, nil
}
