package handler

import (
	"context"
	"fmt"

	"Iron/internal/shared/transport/http"
	"Iron/internal/shared/transport/router"
	"Iron/modules/kit/logx"
	"Iron/modules/kit/tracex"

	"go.uber.org/zap"
)

// User 是 /users 资源的演示 handler，只回显参数，不落库。
type User struct {
	log logx.Logger
}

func NewUser(log logx.Logger) *User {
	if log == nil {
		log = logx.Nop()
	}
	return &User{log: log}
}

// RegisterRoutes 把 /users 路由挂到分组上（前缀由分组决定）。
func (u *User) RegisterRoutes(g *router.Group) {
	g.GET("/users/:id", u.Get).
		POST("/users", u.Create).
		PUT("/users/:id", u.Update).
		DELETE("/users/:id", u.Delete)
}

func (u *User) Get(ctx context.Context, req *http.Request) *http.Response {
	return http.NewResponse(fmt.Sprintf("Getting user with ID: %s", req.Param("id")))
}

func (u *User) Create(ctx context.Context, req *http.Request) *http.Response {
	ctx = tracex.WithSpanID(ctx, "user")
	u.log.WithContext(ctx).Debug("create user", zap.Int("body_len", len(req.Body)))
	return http.NewResponse(fmt.Sprintf("Creating user: %s", req.Body))
}

func (u *User) Update(ctx context.Context, req *http.Request) *http.Response {
	ctx = tracex.WithSpanID(ctx, "user")
	u.log.WithContext(ctx).Debug("update user", zap.String("id", req.Param("id")))
	return http.NewResponse(fmt.Sprintf("Updating user with ID: %s", req.Param("id")))
}

func (u *User) Delete(ctx context.Context, req *http.Request) *http.Response {
	ctx = tracex.WithSpanID(ctx, "user")
	u.log.WithContext(ctx).Debug("delete user", zap.String("id", req.Param("id")))
	return http.NewResponse(fmt.Sprintf("Deleting user with ID: %s", req.Param("id")))
}
