package router

import (
	"context"

	"Iron/internal/shared/transport/http"
)

// Route 是 (method, pattern, handler) 三元组，构造后不可变。
type Route struct {
	method  http.Method
	pattern *Pattern
	handler Handler
}

func newRoute(method http.Method, template string, h Handler) *Route {
	if h == nil {
		panic(invalidRoute(template, "nil handler"))
	}
	return &Route{
		method:  method,
		pattern: MustCompilePattern(template),
		handler: h,
	}
}

func (r *Route) Method() http.Method {
	return r.method
}

func (r *Route) Template() string {
	return r.pattern.Template()
}

// Match 方法相等且路径匹配时返回捕获参数。
func (r *Route) Match(req *http.Request) (map[string]string, bool) {
	if r.method != req.Method {
		return nil, false
	}
	return r.pattern.Match(req.Path)
}

func (r *Route) serve(ctx context.Context, req *http.Request) *http.Response {
	return r.handler.Handle(ctx, req)
}
