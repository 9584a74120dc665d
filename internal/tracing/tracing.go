// SPDX-License-Identifier: MIT
// Package: itemnet/internal/tracing
//
// tracing.go — OpenTelemetry provider setup.

// Package tracing installs the process tracer provider.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.uber.org/zap"
)

// ServiceName is the service.name resource attribute.
const ServiceName = "itemnet"

// Shutdown flushes and stops tracing.
type Shutdown func(context.Context) error

// Setup writes spans as JSON to the file at path. An empty path leaves the
// global no-op provider in place and returns a no-op Shutdown.
//
// Errors: the file cannot be created, or the exporter cannot be built.
func Setup(path, version string, log *zap.Logger) (Shutdown, error) {
	if path == "" {
		return func(context.Context) error { return nil }, nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}
	exp, err := stdouttrace.New(stdouttrace.WithWriter(f), stdouttrace.WithPrettyPrint())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("tracing: exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(version),
		)),
	)
	otel.SetTracerProvider(tp)
	log.Debug("tracing enabled", zap.String("file", path))

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), f.Close())
	}, nil
}
