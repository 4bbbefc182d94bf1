package middleware

import (
	"context"
	"strings"

	"Iron/internal/shared/security"
	"Iron/internal/shared/transport"
	"Iron/internal/shared/transport/http"
	"Iron/internal/shared/transport/router"
	"Iron/modules/kit/logx"

	"go.uber.org/zap"
)

const (
	HeaderAuthorization = "Authorization"
	// HeaderAuthUID 由 JWTAuth 写入，供后续 handler 读取已认证的用户。
	HeaderAuthUID = "X-Auth-Uid"

	bearerPrefix = "Bearer "
)

// RequireAuthorization 只校验 Authorization 头存在，缺失时短路返回 401。
func RequireAuthorization(log logx.Logger) router.Middleware {
	return router.MiddlewareFunc(func(ctx context.Context, req *http.Request) (*http.Request, *http.Response) {
		if v, ok := req.Header(HeaderAuthorization); ok && v != "" {
			return req, nil
		}
		return req, reject(ctx, log, req, "missing_authorization")
	})
}

// JWTAuth 要求 Authorization: Bearer <token> 且 token 能用 secret 验证通过，
// 成功后把 uid 写入 X-Auth-Uid 头。
func JWTAuth(secret string, log logx.Logger) router.Middleware {
	return router.MiddlewareFunc(func(ctx context.Context, req *http.Request) (*http.Request, *http.Response) {
		v, ok := req.Header(HeaderAuthorization)
		if !ok || v == "" {
			return req, reject(ctx, log, req, "missing_authorization")
		}
		token, found := strings.CutPrefix(v, bearerPrefix)
		if !found || token == "" {
			return req, reject(ctx, log, req, "malformed_authorization")
		}
		claims, err := security.ParseToken(secret, token)
		if err != nil {
			return req, reject(ctx, log, req, "invalid_token", zap.Error(err))
		}
		req.SetHeader(HeaderAuthUID, claims.UID)
		return req, nil
	})
}

func reject(ctx context.Context, log logx.Logger, req *http.Request, reason string, fields ...zap.Field) *http.Response {
	transport.SetErrorReason(ctx, reason)
	fields = append(fields, zap.String("path", req.Path))
	logx.ReportBizWithLoggerContext(ctx, log, logx.NewBizLog("auth", reason, "Unauthorized"), fields...)
	return http.NewStatusResponse(http.StatusUnauthorized, "Unauthorized")
}
