package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

// useRecorder installs a recording provider globally for the duration of the test.
// The global is reset to a no-op provider afterwards: otel ignores attempts to
// set its default delegate back.
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })
	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestStartServiceSpan(t *testing.T) {
	recorder := useRecorder(t)

	_, span := StartServiceSpan(context.Background(), "ledger", "create_transaction",
		WithAttribute(SpanAttrCustomerID, uint64(7)),
		WithAttribute(SpanAttrBookCount, 3),
	)
	SetAttributes(span, SpanAttrTransactionHash, "202cb962ac59075b964b07152d234b70", 42, "ignored")
	AddEvent(span, "hash_conflict_recovered", SpanAttrReplayed, true)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "ledger.create_transaction", spans[0].Name())

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, int64(7), attrs[SpanAttrCustomerID].AsInt64())
	assert.Equal(t, int64(3), attrs[SpanAttrBookCount].AsInt64())
	assert.Equal(t, "202cb962ac59075b964b07152d234b70", attrs[SpanAttrTransactionHash].AsString())
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "hash_conflict_recovered", spans[0].Events()[0].Name)
}

func TestRecordError(t *testing.T) {
	recorder := useRecorder(t)

	_, span := StartSpan(context.Background(), "op")
	RecordError(span, errors.New("boom"))
	RecordError(span, nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
}

func TestNilSpanHelpers(t *testing.T) {
	assert.NotPanics(t, func() {
		SetAttributes(nil, "k", "v")
		RecordError(nil, errors.New("x"))
		AddEvent(nil, "e")
	})
}
