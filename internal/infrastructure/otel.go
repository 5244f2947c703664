package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"restock/internal/config"
)

const (
	ServiceName    = config.AppName
	ServiceVersion = config.AppVersion
)

// TracingProvider owns the tracer provider and the span output, if any.
type TracingProvider struct {
	TracerProvider *sdktrace.TracerProvider
	Logger         *slog.Logger
	out            io.Closer
}

// InitializeTracing installs a global tracer provider exporting spans as JSON
// to cfg.FilePath, or to stdout when no path is set. When tracing is
// disabled the global no-op provider is left in place and the returned
// provider's Shutdown does nothing.
func InitializeTracing(ctx context.Context, cfg config.TracingConfig, logger *slog.Logger) (*TracingProvider, error) {
	if logger == nil {
		logger = GetLogger()
	}
	p := &TracingProvider{Logger: logger}
	if !cfg.Enabled {
		return p, nil
	}

	var w io.Writer = stdout
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create trace directory: %w", err)
		}
		file, err := os.Create(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace file: %w", err)
		}
		p.out = file
		w = file
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		p.closeOutput()
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	)

	p.TracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(p.TracerProvider)

	logger.InfoContext(ctx, "Tracing initialized", slog.String("output", describeOutput(cfg.FilePath)))
	return p, nil
}

func describeOutput(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

// Shutdown flushes pending spans and closes the trace file.
func (p *TracingProvider) Shutdown(ctx context.Context) error {
	if p == nil || p.TracerProvider == nil {
		return nil
	}
	err := p.TracerProvider.Shutdown(ctx)
	p.closeOutput()
	if err != nil {
		return fmt.Errorf("tracer provider shutdown: %w", err)
	}
	p.Logger.DebugContext(ctx, "Tracing shutdown complete")
	return nil
}

func (p *TracingProvider) closeOutput() {
	if p.out != nil {
		_ = p.out.Close()
		p.out = nil
	}
}

// AddSpanEvent adds an event to the current span with structured attributes
func AddSpanEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}

	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}
