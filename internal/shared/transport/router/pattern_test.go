package router

import (
	"errors"
	"testing"

	"Iron/modules/kit/errx"
)

func TestCompilePattern_匹配与捕获(t *testing.T) {
	cases := []struct {
		template string
		path     string
		ok       bool
		params   map[string]string
	}{
		{"/", "/", true, map[string]string{}},
		{"/users", "/users", true, map[string]string{}},
		{"/users", "/users/", false, nil},
		{"/users", "/Users", false, nil},
		{"/users/:id", "/users/42", true, map[string]string{"id": "42"}},
		{"/users/:id", "/users/", false, nil},
		{"/users/:id", "/users/4-2", false, nil},
		{"/users/:id", "/users/42/posts", false, nil},
		{"/users/:uid/posts/:pid", "/users/1/posts/abc_9", true, map[string]string{"uid": "1", "pid": "abc_9"}},
		{"/files/*path", "/files/docs/a.pdf", true, map[string]string{"path": "docs/a.pdf"}},
		{"/files/*path", "/files/", true, map[string]string{"path": ""}},
		{"/files/*path", "/files", false, nil},
		{"/static/*file", "/static/css/app.css", true, map[string]string{"file": "css/app.css"}},
		{"/raw/*", "/raw/x/y", true, map[string]string{"path": "x/y"}},
		{"/v1.0/ping", "/v1.0/ping", true, map[string]string{}},
		{"/v1.0/ping", "/v1x0/ping", false, nil},
		{"/a+b", "/a+b", true, map[string]string{}},
	}
	for _, c := range cases {
		p, err := CompilePattern(c.template)
		if err != nil {
			t.Fatalf("CompilePattern(%q) err=%v", c.template, err)
		}
		params, ok := p.Match(c.path)
		if ok != c.ok {
			t.Fatalf("%q match %q: ok got=%v want=%v", c.template, c.path, ok, c.ok)
		}
		if !ok {
			continue
		}
		if len(params) != len(c.params) {
			t.Fatalf("%q match %q: params got=%v want=%v", c.template, c.path, params, c.params)
		}
		for k, v := range c.params {
			if params[k] != v {
				t.Fatalf("%q match %q: param %s got=%q want=%q", c.template, c.path, k, params[k], v)
			}
		}
	}
}

func TestCompilePattern_非法模板(t *testing.T) {
	bad := []string{
		"",
		"users",
		"/users/:",
		"/users/:id-x",
		"/a/:id/b/:id",
		"/files/*path/more",
		"/files/*a.b",
		"/a/:x/*x",
	}
	for _, tpl := range bad {
		_, err := CompilePattern(tpl)
		if !errors.Is(err, errx.ErrInvalidPattern) {
			t.Fatalf("CompilePattern(%q) 期望 ErrInvalidPattern, got=%v", tpl, err)
		}
	}
}

func TestCompilePattern_确定性(t *testing.T) {
	a := MustCompilePattern("/users/:id/*rest")
	b := MustCompilePattern("/users/:id/*rest")
	if a.String() != b.String() {
		t.Fatalf("同一模板编译结果应一致: %q vs %q", a.String(), b.String())
	}
	names := a.Names()
	if len(names) != 2 || names[0] != "id" || names[1] != "rest" {
		t.Fatalf("names got=%v", names)
	}
}

func TestMustCompilePattern_panic(t *testing.T) {
	err := expectPanic(t, func() { MustCompilePattern("/a/:") })
	if !errors.Is(err, errx.ErrInvalidPattern) {
		t.Fatalf("期望 ErrInvalidPattern, got=%v", err)
	}
}

// expectPanic 执行 fn 并返回 panic 值（必须是 error）。
func expectPanic(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatalf("期望 panic")
		}
		e, ok := rec.(error)
		if !ok {
			t.Fatalf("期望 panic 值为 error, got=%T %v", rec, rec)
		}
		err = e
	}()
	fn()
	return nil
}
