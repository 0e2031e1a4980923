package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferLogger(buf *bytes.Buffer) *zap.Logger {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(buf), zapcore.DebugLevel))
}

func contextWithSpan(ctx context.Context) (context.Context, trace.SpanContext) {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:     trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(ctx, sc), sc
}

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		base := zap.NewExample()
		ctx := WithContext(context.Background(), base)
		assert.Same(t, base, FromContext(ctx))
	})

	t.Run("returns nop logger when missing", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("ignores values of the wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
		assert.NotNil(t, FromContext(ctx))
	})
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	ctx, enriched := WithRequestID(context.Background(), newBufferLogger(&buf), "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Same(t, enriched, FromContext(ctx))

	enriched.Info("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
}

func TestTransactionHashContext(t *testing.T) {
	assert.Empty(t, GetTransactionHash(context.Background()))

	ctx := WithTransactionHash(context.Background(), "c20ad4d76fe97759aa27a0c99bff6710")
	assert.Equal(t, "c20ad4d76fe97759aa27a0c99bff6710", GetTransactionHash(ctx))
}

func TestTraceIDs(t *testing.T) {
	t.Run("empty without span", func(t *testing.T) {
		assert.Empty(t, GetTraceID(context.Background()))
		assert.Empty(t, GetSpanID(context.Background()))
	})

	t.Run("read from span context", func(t *testing.T) {
		ctx, sc := contextWithSpan(context.Background())
		assert.Equal(t, sc.TraceID().String(), GetTraceID(ctx))
		assert.Equal(t, sc.SpanID().String(), GetSpanID(ctx))
	})
}

func TestContextLogger_EnrichesWithContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := newBufferLogger(&buf)

	ctx := WithContext(context.Background(), base)
	ctx = context.WithValue(ctx, RequestIDKey, "req-9")
	ctx = WithTransactionHash(ctx, "202cb962ac59075b964b07152d234b70")
	ctx, sc := contextWithSpan(ctx)

	L(ctx).Info("transaction created", zap.Uint64("customer_id", 7))

	out := buf.String()
	assert.Contains(t, out, `"msg":"transaction created"`)
	assert.Contains(t, out, `"request_id":"req-9"`)
	assert.Contains(t, out, `"transaction_hash":"202cb962ac59075b964b07152d234b70"`)
	assert.Contains(t, out, `"trace_id":"`+sc.TraceID().String()+`"`)
	assert.Contains(t, out, `"customer_id":7`)
}

func TestContextLogger_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	WithLogger(context.Background(), newBufferLogger(&buf)).Warn("plain")

	out := buf.String()
	assert.Contains(t, out, `"msg":"plain"`)
	assert.NotContains(t, out, "request_id")
	assert.NotContains(t, out, "trace_id")
}

func TestContextLogger_With(t *testing.T) {
	var buf bytes.Buffer
	cl := WithLogger(context.Background(), newBufferLogger(&buf)).With(zap.String("component", "ledger"))
	cl.Debug("child")
	assert.Contains(t, buf.String(), `"component":"ledger"`)
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}
	assert.NotPanics(t, func() {
		cl.Info("ignored")
		cl.With(zap.Int("n", 1)).Error("ignored")
		_ = cl.Zap()
	})
}
