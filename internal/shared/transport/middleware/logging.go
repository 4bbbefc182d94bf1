package middleware

import (
	"context"

	"Iron/internal/shared/transport/http"
	"Iron/internal/shared/transport/router"
	"Iron/modules/kit/logx"

	"go.uber.org/zap"
)

// Logging 记录每个进入路由的请求，原样放行。
func Logging(log logx.Logger) router.Middleware {
	if log == nil {
		log = logx.Nop()
	}
	return router.MiddlewareFunc(func(ctx context.Context, req *http.Request) (*http.Request, *http.Response) {
		log.WithContext(ctx).Info("received request",
			zap.String("method", req.Method.String()),
			zap.String("path", req.Path),
			zap.Int("body_len", len(req.Body)))
		return req, nil
	})
}
