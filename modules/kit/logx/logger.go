package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是各层共用的最小日志接口。
//
// 约束：
// - 只承载结构化字段 + ctx 透传（trace/span 等）
// - 路由、连接层只依赖这个接口，测试里用 fake 替换
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}

// Nop 返回丢弃所有输出的 Logger。
func Nop() Logger {
	return NewZapLogger(nil)
}
