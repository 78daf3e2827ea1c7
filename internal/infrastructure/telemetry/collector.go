package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

// flushTimeout bounds how long a provider may spend exporting on shutdown
const flushTimeout = 10 * time.Second

// Collector addresses the OTLP gRPC collector shared by traces, metrics and logs
type Collector struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
}

func (c Collector) resource() (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(c.ServiceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// flush runs a provider's shutdown under flushTimeout. signal names the
// provider in logs and errors: "traces", "metrics" or "logs".
func flush(ctx context.Context, logger *zap.Logger, signal string, shutdown func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()

	if err := shutdown(ctx); err != nil {
		logger.Error("OpenTelemetry flush failed", zap.String("signal", signal), zap.Error(err))
		return fmt.Errorf("shutdown %s provider: %w", signal, err)
	}
	logger.Info("OpenTelemetry provider flushed", zap.String("signal", signal))
	return nil
}
