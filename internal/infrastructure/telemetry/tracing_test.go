package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

// newRecordingTracer returns a tracer provider backed by an in-memory exporter.
func newRecordingTracer(t *testing.T) (*sdktrace.TracerProvider, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})
	return tp, exporter
}

func TestStartServiceSpan_NamingConvention(t *testing.T) {
	tp, exporter := newRecordingTracer(t)

	tracer := tp.Tracer(TracerName)
	_, span := tracer.Start(context.Background(), "warehouse.abc_analysis")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "warehouse.abc_analysis", spans[0].Name)
}

func TestSetAttributes_SkipsMalformedPairs(t *testing.T) {
	tp, exporter := newRecordingTracer(t)

	_, span := tp.Tracer(TracerName).Start(context.Background(), "test")
	SetAttributes(span,
		SpanAttrJobOrder, "JO-2024-001",
		42, "not-a-string-key", // key is not a string, pair is dropped
		SpanAttrResultCount, 17,
	)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	attrs := spans[0].Attributes
	assert.Contains(t, attrs, attribute.String(SpanAttrJobOrder, "JO-2024-001"))
	assert.Contains(t, attrs, attribute.Int(SpanAttrResultCount, 17))
	assert.Len(t, attrs, 2)
}

func TestRecordError_SetsErrorStatus(t *testing.T) {
	tp, exporter := newRecordingTracer(t)

	_, span := tp.Tracer(TracerName).Start(context.Background(), "test")
	RecordError(span, errors.New("connection refused"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "connection refused", spans[0].Status.Description)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestRecordError_NilErrorIsNoop(t *testing.T) {
	tp, exporter := newRecordingTracer(t)

	_, span := tp.Tracer(TracerName).Start(context.Background(), "test")
	RecordError(span, nil)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Empty(t, spans[0].Events)
}

func TestGetTraceID(t *testing.T) {
	t.Run("no span in context", func(t *testing.T) {
		assert.Empty(t, GetTraceID(context.Background()))
		assert.Empty(t, GetSpanID(context.Background()))
	})

	t.Run("active span", func(t *testing.T) {
		tp, _ := newRecordingTracer(t)

		ctx, span := tp.Tracer(TracerName).Start(context.Background(), "test")
		defer span.End()

		assert.NotEmpty(t, GetTraceID(ctx))
		assert.NotEmpty(t, GetSpanID(ctx))
	})
}

func TestToAttribute_Conversions(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  attribute.KeyValue
	}{
		{"string", "PN-100", attribute.String("k", "PN-100")},
		{"int", 5, attribute.Int("k", 5)},
		{"int64", int64(9), attribute.Int64("k", 9)},
		{"float64", 1.5, attribute.Float64("k", 1.5)},
		{"bool", true, attribute.Bool("k", true)},
		{"string slice", []string{"a", "b"}, attribute.StringSlice("k", []string{"a", "b"})},
		{"stringer", 3 * time.Second, attribute.String("k", "3s")},
		{"fallback", struct{ X int }{1}, attribute.String("k", "{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toAttribute("k", tt.value))
		})
	}
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NotNil(t, tp.Tracer("test"))
}
