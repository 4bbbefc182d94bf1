package tracex

import (
	"context"
	"encoding/hex"

	"github.com/google/uuid"
)

type traceIDKey struct{}
type spanIDKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(traceIDKey{}).(string)
	return s, ok && s != ""
}

// WithSpanID 记录当前处理阶段（例如 "conn"、"dispatch"）。
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, spanIDKey{}, spanID)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(spanIDKey{}).(string)
	return s, ok && s != ""
}

// NewTraceID 生成 16 字节随机 trace_id（hex，无连字符）。
func NewTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return ""
	}
	return hex.EncodeToString(id[:])
}
