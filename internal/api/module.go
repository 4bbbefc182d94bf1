package api

import (
	"Iron/internal/api/handler"
	"Iron/internal/shared/config"
	"Iron/internal/shared/transport/middleware"
	"Iron/internal/shared/transport/router"
	"Iron/modules/kit/logx"
)

// Module 组装演示站点：全局日志与请求 id 中间件、公开路由、需要鉴权的 /api 分组。
type Module struct {
	auth config.AuthConfig
	log  logx.Logger
	user *handler.User
}

func New(auth config.AuthConfig, log logx.Logger) *Module {
	if log == nil {
		log = logx.Nop()
	}
	if auth.Prefix == "" {
		auth.Prefix = config.DefaultAuthPrefix
	}
	return &Module{
		auth: auth,
		log:  log,
		user: handler.NewUser(log),
	}
}

func (m *Module) Register(b *router.Builder) {
	b.Use(middleware.Logging(m.log), middleware.RequestID())

	api := b.Group(m.auth.Prefix).Use(m.authMiddleware())
	m.user.RegisterRoutes(api)

	handler.RegisterPublic(b)
}

func (m *Module) authMiddleware() router.Middleware {
	if m.auth.RequireJWT {
		return middleware.JWTAuth(m.auth.JWTSecret, m.log)
	}
	return middleware.RequireAuthorization(m.log)
}

var _ router.Registrar = (*Module)(nil)
