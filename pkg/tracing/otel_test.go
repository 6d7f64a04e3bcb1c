package tracing

import (
	"context"
	"testing"

	"github.com/NextSpark-js/nextspark-sub000/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestOutputAttribute(t *testing.T) {
	testCases := []struct {
		name     string
		value    interface{}
		expected attribute.KeyValue
	}{
		{"string", "task:list", attribute.String("llm.output.k", "task:list")},
		{"bool", true, attribute.Bool("llm.output.k", true)},
		{"int", 2, attribute.Int("llm.output.k", 2)},
		{"float", 0.5, attribute.Float64("llm.output.k", 0.5)},
		{"fallback", []string{"a"}, attribute.String("llm.output.k", "[a]")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, outputAttribute("llm.output.k", tc.value))
		})
	}
}

func TestNoopTracer(t *testing.T) {
	tracer := NewNoopTracer()

	ctx, span := tracer.StartSpan(
		context.Background(),
		&models.TracePrincipal{UserID: "user-1"},
		models.SpanStartOptions{Name: "intent_router.classify"},
	)
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	span.End(models.SpanEndOptions{Output: map[string]interface{}{"intentCount": 0}})
}
