package tracing

import (
	"context"

	"github.com/NextSpark-js/nextspark-sub000/pkg/models"
)

var _ models.Tracer = &NoopTracer{}

// NoopTracer is used when tracing is disabled. Spans cost nothing and
// record nothing.
type NoopTracer struct{}

func NewNoopTracer() *NoopTracer {
	return &NoopTracer{}
}

func (t *NoopTracer) StartSpan(
	ctx context.Context,
	_ *models.TracePrincipal,
	_ models.SpanStartOptions,
) (context.Context, models.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(_ models.SpanEndOptions) {}
