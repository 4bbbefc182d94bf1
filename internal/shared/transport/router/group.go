package router

import (
	"strings"

	"Iron/internal/shared/transport/http"
	"Iron/modules/kit/errx"
)

// Group 是前缀分组的注册句柄，只能由 Builder.Group 创建，且只有一层。
// 注册到分组上的模板会先拼上前缀再编译。
type Group struct {
	prefix      string
	routes      []*Route
	middlewares []Middleware
}

func newGroup(prefix string) *Group {
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		panic(invalidRoute(prefix, "group prefix must start with /"))
	}
	return &Group{prefix: prefix}
}

func (g *Group) Prefix() string {
	return g.prefix
}

// AddRoute 注册分组路由，模板为 prefix+template。模板非法时 panic。
func (g *Group) AddRoute(method http.Method, template string, h Handler) *Group {
	g.routes = append(g.routes, newRoute(method, g.prefix+template, h))
	return g
}

func (g *Group) GET(template string, h HandlerFunc) *Group {
	return g.AddRoute(http.MethodGet, template, h)
}

func (g *Group) POST(template string, h HandlerFunc) *Group {
	return g.AddRoute(http.MethodPost, template, h)
}

func (g *Group) PUT(template string, h HandlerFunc) *Group {
	return g.AddRoute(http.MethodPut, template, h)
}

func (g *Group) DELETE(template string, h HandlerFunc) *Group {
	return g.AddRoute(http.MethodDelete, template, h)
}

// Use 追加分组中间件，只在请求路径以 prefix 开头时执行。
func (g *Group) Use(mws ...Middleware) *Group {
	g.middlewares = appendMiddlewares(g.middlewares, mws)
	return g
}

// Group 不支持嵌套，调用即 panic（注册期致命错误）。
func (g *Group) Group(prefix string) *Group {
	panic(errx.ErrNestedGroup.
		WithData("parent", g.prefix).
		WithData("prefix", prefix))
}

func (g *Group) freeze() group {
	return group{
		prefix:      g.prefix,
		routes:      append([]*Route(nil), g.routes...),
		middlewares: append([]Middleware(nil), g.middlewares...),
	}
}

// group 是冻结后的分组。
type group struct {
	prefix      string
	routes      []*Route
	middlewares []Middleware
}

func (g *group) covers(path string) bool {
	return strings.HasPrefix(path, g.prefix)
}

func appendMiddlewares(dst, mws []Middleware) []Middleware {
	for _, mw := range mws {
		if mw == nil {
			panic(errx.ErrInvalidRoute.WithReason("nil middleware"))
		}
	}
	return append(dst, mws...)
}

func invalidRoute(template, reason string) error {
	return errx.ErrInvalidRoute.WithData("pattern", template).WithReason(reason)
}
