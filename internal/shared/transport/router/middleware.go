package router

import (
	"context"

	"Iron/internal/shared/transport/http"
)

// runChain 依次执行中间件；任一中间件返回响应即短路，后续中间件不再执行。
// 中间件返回 (nil, nil) 视为原样放行。
func runChain(ctx context.Context, chain []Middleware, req *http.Request) (*http.Request, *http.Response) {
	for _, mw := range chain {
		next, resp := mw.Process(ctx, req)
		if resp != nil {
			return req, resp
		}
		if next != nil {
			req = next
		}
	}
	return req, nil
}

// Chain 把多个中间件合成一个，执行顺序与传入顺序一致。
func Chain(mws ...Middleware) Middleware {
	chain := append([]Middleware(nil), mws...)
	return MiddlewareFunc(func(ctx context.Context, req *http.Request) (*http.Request, *http.Response) {
		return runChain(ctx, chain, req)
	})
}
