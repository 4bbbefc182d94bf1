package router

import (
	"Iron/internal/shared/transport/http"
)

// Builder 收集路由、中间件和分组，Build 后得到不可变的 Router。
//
// 所有配置错误（模板非法、嵌套分组、nil handler）都在注册时 panic，
// 不会拖到请求处理阶段。Builder 本身不是并发安全的，只应在启动阶段使用。
type Builder struct {
	routes      []*Route
	middlewares []Middleware
	groups      []*Group
}

func NewBuilder() *Builder {
	return &Builder{}
}

// AddRoute 注册顶层路由。同方法且模板重叠的路由按注册顺序先到先得。
func (b *Builder) AddRoute(method http.Method, template string, h Handler) *Builder {
	b.routes = append(b.routes, newRoute(method, template, h))
	return b
}

func (b *Builder) GET(template string, h HandlerFunc) *Builder {
	return b.AddRoute(http.MethodGet, template, h)
}

func (b *Builder) POST(template string, h HandlerFunc) *Builder {
	return b.AddRoute(http.MethodPost, template, h)
}

func (b *Builder) PUT(template string, h HandlerFunc) *Builder {
	return b.AddRoute(http.MethodPut, template, h)
}

func (b *Builder) DELETE(template string, h HandlerFunc) *Builder {
	return b.AddRoute(http.MethodDelete, template, h)
}

// Use 追加全局中间件，它们总在分组和路由之前执行。
func (b *Builder) Use(mws ...Middleware) *Builder {
	b.middlewares = appendMiddlewares(b.middlewares, mws)
	return b
}

// Group 新建一个直接挂在 Router 下的前缀分组。
func (b *Builder) Group(prefix string) *Group {
	g := newGroup(prefix)
	b.groups = append(b.groups, g)
	return g
}

// Build 冻结当前配置。之后对 Builder 或 Group 的修改不会影响已构建的 Router。
func (b *Builder) Build() *Router {
	r := &Router{
		routes:      append([]*Route(nil), b.routes...),
		middlewares: append([]Middleware(nil), b.middlewares...),
		groups:      make([]group, 0, len(b.groups)),
	}
	for _, g := range b.groups {
		r.groups = append(r.groups, g.freeze())
	}
	return r
}
