package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"Iron/internal/api"
	"Iron/internal/shared/config"
	"Iron/internal/shared/logs"
	"Iron/internal/shared/transport/router"
	"Iron/internal/shared/transport/tcp"
	"Iron/internal/shared/utils"
	"Iron/modules/kit/logx"

	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "配置文件路径，为空时向上查找 configs/conf.yml")
	flag.Parse()

	conf, err := config.LoadAndWatch(*cfgPath, func(next config.Config) {
		logs.SetLevel(next.Log.Level)
		logs.Info("log level reloaded", zap.String("level", logs.Level().String()))
	})
	if err != nil {
		panic(err)
	}
	if err := logs.Init("iron", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("server", conf.Server), zap.String("auth_prefix", conf.Auth.Prefix), zap.Bool("require_jwt", conf.Auth.RequireJWT))

	baseLogger := logx.NewZapLogger(logs.Logger())

	connIDs, err := utils.NewSnowflake(conf.Server.NodeID)
	if err != nil {
		logs.Fatal("snowflake init failed", zap.Error(err))
	}

	r, err := buildRouter(conf, baseLogger)
	if err != nil {
		logs.Fatal("router build failed", zap.Error(err))
	}
	for _, ri := range r.Routes() {
		logs.Debug("route", zap.String("method", ri.Method.String()), zap.String("template", ri.Template), zap.String("group", ri.Group))
	}

	server := tcp.NewServer(r,
		tcp.WithLogger(baseLogger),
		tcp.WithReadBufferSize(conf.Server.ReadBufferSize),
		tcp.WithConnIDs(connIDs),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(ctx, conf.Server.Addr()); err != nil && !errors.Is(err, tcp.ErrServerClosed) {
			errCh <- fmt.Errorf("iron server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Warn("shutdown timeout, remaining connections closed", zap.Error(err))
	}
}

// buildRouter 注册所有模块。注册期的配置错误以 panic 抛出，这里统一转成 error。
func buildRouter(conf *config.Config, log logx.Logger) (r *router.Router, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", rec)
		}
	}()

	b := router.NewBuilder()
	modules := []router.Registrar{
		api.New(conf.Auth, log),
	}
	for _, m := range modules {
		m.Register(b)
	}
	return b.Build(), nil
}
