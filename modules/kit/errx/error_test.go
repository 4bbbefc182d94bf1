package errx

import (
	"errors"
	"io"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := ErrInvalidPattern.WithData("pattern", "/a/:").WithCause(errors.New("cause1"))
	e2 := ErrInvalidPattern.WithData("pattern", "/b/*x/c")
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true, e1=%v e2=%v", e1, e2)
	}
	if errors.Is(e1, ErrNestedGroup) {
		t.Fatalf("不同 code 不应相等")
	}
}

func TestError_系统错误捕获一次栈_且不重复捕获(t *testing.T) {
	sys := ErrConnRead.WithCause(io.ErrUnexpectedEOF)
	if len(sys.Stack()) == 0 {
		t.Fatalf("期望系统错误捕获栈")
	}
	if !errors.Is(sys, io.ErrUnexpectedEOF) {
		t.Fatalf("期望 cause 链不丢, err=%v", sys)
	}

	sys2 := ErrInternal.WithCause(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("期望上层不重复捕获栈, got=%v", got)
	}
}

func TestError_业务错误不捕获栈(t *testing.T) {
	err := NewBiz("UNAUTHORIZED", "缺少凭证").WithCause(errors.New("no header"))
	if err.Stack() != nil {
		t.Fatalf("期望业务错误不捕获栈")
	}
	if err.IsSys() {
		t.Fatalf("期望 IsSys()==false")
	}
}

func TestError_Data_防止外部map污染(t *testing.T) {
	m := map[string]any{"k": "v"}
	err := ErrInvalidRoute.WithDataMap(m)
	m["k"] = "mutated"
	if got := err.Data()["k"]; got != "v" {
		t.Fatalf("期望构造时复制 data, got=%v", got)
	}
	if ErrInvalidRoute.Data() != nil {
		t.Fatalf("哨兵错误不应被 WithDataMap 修改")
	}
}

func TestAs(t *testing.T) {
	wrapped := ErrInternal.WithCause(ErrNestedGroup.WithReason("prefix=/v1"))
	e, ok := As(wrapped)
	if !ok || e.Code() != CodeInternal {
		t.Fatalf("As got=%v ok=%v", e, ok)
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Fatalf("普通错误不应被 As 命中")
	}
	if got := ErrNestedGroup.WithReason("x").Reason(); got != "x" {
		t.Fatalf("Reason got=%q", got)
	}
}
