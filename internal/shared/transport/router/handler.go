package router

import (
	"context"

	"Iron/internal/shared/transport/http"
)

// Handler 处理一个已命中路由的请求（Params 已填充）并产出响应。
// Handler 不能拒绝已选中的匹配，拒绝只能由中间件完成。
type Handler interface {
	Handle(ctx context.Context, req *http.Request) *http.Response
}

// HandlerFunc 让普通函数实现 Handler。
type HandlerFunc func(ctx context.Context, req *http.Request) *http.Response

func (f HandlerFunc) Handle(ctx context.Context, req *http.Request) *http.Response {
	return f(ctx, req)
}

// Middleware 处理请求后二选一：返回（可能被修改的）请求继续链路，
// 或返回非 nil 的响应立即结束处理。
type Middleware interface {
	Process(ctx context.Context, req *http.Request) (*http.Request, *http.Response)
}

// MiddlewareFunc 让普通函数实现 Middleware。
type MiddlewareFunc func(ctx context.Context, req *http.Request) (*http.Request, *http.Response)

func (f MiddlewareFunc) Process(ctx context.Context, req *http.Request) (*http.Request, *http.Response) {
	return f(ctx, req)
}

// Registrar 由业务模块实现，在启动阶段把路由注册进 Builder。
type Registrar interface {
	Register(b *Builder)
}
