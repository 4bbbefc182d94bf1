package router

import (
	"context"

	"Iron/internal/shared/transport"
	"Iron/internal/shared/transport/http"
)

// Router 是构建完成后的只读路由表，可被任意多个连接 goroutine 并发使用。
type Router struct {
	routes      []*Route
	middlewares []Middleware
	groups      []group
}

// RouteInfo 用于启动日志和排查。
type RouteInfo struct {
	Method   http.Method
	Template string
	Group    string
}

// Handle 分发一个请求：
//  1. 全局中间件，短路即返回
//  2. 按注册顺序遍历所有前缀命中的分组：分组中间件，再按顺序匹配分组路由
//  3. 分组都没命中时匹配顶层路由
//  4. 仍未命中返回 404
func (r *Router) Handle(ctx context.Context, req *http.Request) *http.Response {
	req, resp := runChain(ctx, r.middlewares, req)
	if resp != nil {
		return resp
	}

	for i := range r.groups {
		g := &r.groups[i]
		if !g.covers(req.Path) {
			continue
		}
		if req, resp = runChain(ctx, g.middlewares, req); resp != nil {
			return resp
		}
		if resp, ok := serveFirstMatch(ctx, g.routes, req); ok {
			return resp
		}
	}

	if resp, ok := serveFirstMatch(ctx, r.routes, req); ok {
		return resp
	}
	return http.NotFound()
}

// serveFirstMatch 先到先得；命中后整体替换 Params 再调用 handler。
func serveFirstMatch(ctx context.Context, routes []*Route, req *http.Request) (*http.Response, bool) {
	for _, route := range routes {
		params, ok := route.Match(req)
		if !ok {
			continue
		}
		req.SetParams(params)
		transport.SetRoute(ctx, route.Template())
		resp := route.serve(ctx, req)
		if resp == nil {
			// handler 违反约定没有给出响应。
			resp = http.NewStatusResponse(http.StatusInternalServerError, "500 Internal Server Error")
		}
		return resp, true
	}
	return nil, false
}

// Routes 按匹配优先级返回所有路由：先分组（按注册顺序），再顶层。
func (r *Router) Routes() []RouteInfo {
	var out []RouteInfo
	for _, g := range r.groups {
		for _, route := range g.routes {
			out = append(out, RouteInfo{Method: route.Method(), Template: route.Template(), Group: g.prefix})
		}
	}
	for _, route := range r.routes {
		out = append(out, RouteInfo{Method: route.Method(), Template: route.Template()})
	}
	return out
}
