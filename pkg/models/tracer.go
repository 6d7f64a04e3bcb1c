package models

import "context"

// TracePrincipal identifies who a classification span belongs to.
type TracePrincipal struct {
	UserID  string `json:"userId,omitempty"`
	TeamID  string `json:"teamId,omitempty"`
	TraceID string `json:"traceId,omitempty"`
}

// SpanStartOptions carries the metadata recorded when a span opens.
type SpanStartOptions struct {
	Name     string
	Type     string
	Provider string
	Model    string
	Input    string
}

// SpanEndOptions carries either a redacted result summary or the error
// that terminated the operation.
type SpanEndOptions struct {
	Output map[string]interface{}
	Err    error
}

type Span interface {
	End(opts SpanEndOptions)
}

// Tracer is the telemetry sink consumed by the router. Implementations
// must be safe for concurrent span creation under distinct principals.
type Tracer interface {
	StartSpan(
		ctx context.Context,
		principal *TracePrincipal,
		opts SpanStartOptions,
	) (context.Context, Span)
}
