package tracing

import (
	"context"
	"fmt"

	"github.com/NextSpark-js/nextspark-sub000/config"
	"github.com/NextSpark-js/nextspark-sub000/pkg/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/NextSpark-js/nextspark-sub000/pkg/tracing"

// InitTracerProvider configures the global OTLP tracer provider from the
// trace config and returns its shutdown function.
func InitTracerProvider(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithInsecure()}
	if cfg.Trace.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Trace.Endpoint))
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	serviceName := cfg.Trace.ServiceName
	if serviceName == "" {
		serviceName = "intent-router"
	}

	res, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}

var _ models.Tracer = &OtelTracer{}

// OtelTracer emits classification spans through the global OpenTelemetry
// tracer provider.
type OtelTracer struct {
	tracer oteltrace.Tracer
}

func NewOtelTracer() *OtelTracer {
	return &OtelTracer{tracer: otel.Tracer(instrumentationName)}
}

func (t *OtelTracer) StartSpan(
	ctx context.Context,
	principal *models.TracePrincipal,
	opts models.SpanStartOptions,
) (context.Context, models.Span) {
	ctx, span := t.tracer.Start(ctx, opts.Name)

	attrs := []attribute.KeyValue{
		attribute.String("llm.span_type", opts.Type),
		attribute.String("llm.provider", opts.Provider),
		attribute.String("llm.model", opts.Model),
		attribute.String("llm.input", opts.Input),
	}
	if principal != nil {
		if principal.UserID != "" {
			attrs = append(attrs, attribute.String("principal.user_id", principal.UserID))
		}
		if principal.TeamID != "" {
			attrs = append(attrs, attribute.String("principal.team_id", principal.TeamID))
		}
		if principal.TraceID != "" {
			attrs = append(attrs, attribute.String("principal.trace_id", principal.TraceID))
		}
	}
	span.SetAttributes(attrs...)

	return ctx, &otelSpan{span: span}
}

type otelSpan struct {
	span oteltrace.Span
}

func (s *otelSpan) End(opts models.SpanEndOptions) {
	defer s.span.End()

	if opts.Err != nil {
		s.span.RecordError(opts.Err)
		s.span.SetStatus(codes.Error, opts.Err.Error())
		return
	}

	for key, value := range opts.Output {
		s.span.SetAttributes(outputAttribute("llm.output."+key, value))
	}
	s.span.SetStatus(codes.Ok, "")
}

func outputAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
