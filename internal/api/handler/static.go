package handler

import (
	"context"

	"Iron/internal/shared/transport/http"
	"Iron/internal/shared/transport/router"
)

// Hello 响应根路径。
func Hello(ctx context.Context, req *http.Request) *http.Response {
	return http.NewResponse("Hello, World!")
}

// File 回显 /files/*path 捕获到的路径。
func File(ctx context.Context, req *http.Request) *http.Response {
	path, ok := req.Params["path"]
	if !ok {
		path = "unknown"
	}
	return http.NewResponse("Accessing file: " + path)
}

// RegisterPublic 注册不需要鉴权的顶层路由。
func RegisterPublic(b *router.Builder) {
	b.GET("/", Hello).
		GET("/files/*path", File)
}
