package middleware

import (
	"context"

	"Iron/internal/shared/transport/http"
	"Iron/internal/shared/transport/router"

	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-Id"

// RequestID 在请求缺少 X-Request-Id 时补一个 uuid，已有则保留。
func RequestID() router.Middleware {
	return router.MiddlewareFunc(func(ctx context.Context, req *http.Request) (*http.Request, *http.Response) {
		if id, ok := req.Header(HeaderRequestID); ok && id != "" {
			return req, nil
		}
		req.SetHeader(HeaderRequestID, uuid.NewString())
		return req, nil
	})
}
