package transport

import (
	"context"
	"time"

	"Iron/modules/kit/logx"
	"Iron/modules/kit/tracex"

	"go.uber.org/zap"
)

// AccessLog 是单个请求的访问日志上下文，由连接层创建、路由层补充。
type AccessLog struct {
	Status      int
	Route       string
	ErrorReason string
	ConnID      int64
	RemoteAddr  string
	startTime   time.Time
	action      string
}

type accessLogKey struct{}

// NewContext 创建带 AccessLog 的新 context（以 background 为父 context）。
func NewContext(action string) context.Context {
	return NewContextWithParent(context.Background(), action)
}

// NewContextWithParent 创建带 AccessLog 和新 trace_id 的 context，保留父 context 的取消信号。
func NewContextWithParent(parent context.Context, action string) context.Context {
	ctx := parent
	if ctx == nil {
		ctx = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	if traceID := tracex.NewTraceID(); traceID != "" {
		ctx = tracex.WithTraceID(ctx, traceID)
	}
	ctx = tracex.WithSpanID(ctx, "conn")

	al := &AccessLog{
		startTime: time.Now(),
		action:    action,
	}
	return context.WithValue(ctx, accessLogKey{}, al)
}

// FromContext 从 context 读取 AccessLog。
func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

// SetAction 更新动作描述（请求解析完成后改为 "METHOD path"）。
func SetAction(ctx context.Context, action string) {
	if al := FromContext(ctx); al != nil && action != "" {
		al.action = action
	}
}

// SetStatus 记录最终响应状态码。
func SetStatus(ctx context.Context, status int) {
	if al := FromContext(ctx); al != nil {
		al.Status = status
	}
}

// SetRoute 记录命中的路由模板。
func SetRoute(ctx context.Context, template string) {
	if al := FromContext(ctx); al != nil {
		al.Route = template
	}
}

// SetConn 记录连接标识。
func SetConn(ctx context.Context, connID int64, remoteAddr string) {
	if al := FromContext(ctx); al != nil {
		al.ConnID = connID
		al.RemoteAddr = remoteAddr
	}
}

// SetErrorReason 设置 access 日志错误原因（失败场景）。
func SetErrorReason(ctx context.Context, reason string) {
	if reason == "" {
		return
	}
	if al := FromContext(ctx); al != nil {
		al.ErrorReason = reason
	}
}

// WriteAccessLog 输出访问日志（建议在连接处理结束时 defer 调用）。
func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}

	fields := []zap.Field{
		zap.Duration("latency", time.Since(al.startTime)),
		zap.Int64("conn_id", al.ConnID),
	}
	if al.RemoteAddr != "" {
		fields = append(fields, zap.String("remote_addr", al.RemoteAddr))
	}
	if al.Route != "" {
		fields = append(fields, zap.String("route", al.Route))
	}
	if al.ErrorReason != "" {
		fields = append(fields, zap.String("error_reason", al.ErrorReason))
	}
	logx.ReportAccessWithLoggerContext(ctx, log, al.action, al.Status, fields...)
}
