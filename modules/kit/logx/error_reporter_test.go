package logx

import (
	"context"
	"errors"
	"testing"

	"Iron/modules/kit/errx"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildErrorLog_能提取语义与栈(t *testing.T) {
	cause := errors.New("connection reset by peer")
	e := errx.ErrConnWrite.
		WithData("remote_addr", "127.0.0.1:5000").
		WithCause(cause)

	meta := BuildErrorLog(e)
	if meta.Error == "" || meta.Code != string(errx.CodeConnWrite) || meta.Msg == "" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if meta.Data["remote_addr"] != "127.0.0.1:5000" {
		t.Fatalf("期望 meta.Data 包含 remote_addr, got=%v", meta.Data)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("期望 meta.CauseChain 非空")
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("期望 origin/stack 非空 origin=%q stack=%q", meta.Origin, meta.Stack)
	}
}

func TestReportAccess_按状态码分级(t *testing.T) {
	cases := []struct {
		status int
		level  zapcore.Level
	}{
		{200, zapcore.InfoLevel},
		{401, zapcore.WarnLevel},
		{404, zapcore.WarnLevel},
		{500, zapcore.ErrorLevel},
	}
	for _, c := range cases {
		core, logs := observer.New(zapcore.DebugLevel)
		l := NewZapLogger(zap.New(core))
		ReportAccessWithLoggerContext(context.Background(), l, "GET /", c.status)
		entries := logs.All()
		if len(entries) != 1 {
			t.Fatalf("status=%d 期望 1 条日志, got=%d", c.status, len(entries))
		}
		if entries[0].Level != c.level {
			t.Fatalf("status=%d level got=%v want=%v", c.status, entries[0].Level, c.level)
		}
		if entries[0].ContextMap()["status"] != int64(c.status) {
			t.Fatalf("status 字段缺失: %v", entries[0].ContextMap())
		}
	}
}

func TestReportSysError_nil错误不输出(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))
	ReportSysErrorWithLoggerContext(context.Background(), l, NewSysLog("conn", nil))
	if logs.Len() != 0 {
		t.Fatalf("期望不输出日志, got=%d", logs.Len())
	}
	ReportSysErrorWithLoggerContext(context.Background(), l, NewSysLog("conn", errx.ErrConnRead.WithCause(errors.New("eof"))))
	if logs.Len() != 1 || logs.All()[0].Level != zapcore.ErrorLevel {
		t.Fatalf("期望 1 条 ERROR 日志, got=%v", logs.All())
	}
}

func TestReportBiz_INFO级别(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))
	ReportBizWithLoggerContext(context.Background(), l, NewBizLog("auth", "missing_authorization", "Unauthorized"))
	if logs.Len() != 1 || logs.All()[0].Level != zapcore.InfoLevel {
		t.Fatalf("期望 1 条 INFO 日志, got=%v", logs.All())
	}
	if logs.All()[0].Message != "auth, reason:missing_authorization, msg:Unauthorized" {
		t.Fatalf("msg got=%q", logs.All()[0].Message)
	}
}
