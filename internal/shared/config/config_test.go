package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"Iron/modules/kit/errx"
)

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write conf err=%v", err)
	}
	return path
}

func TestLoad_读取文件(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := writeConf(t, `
server:
  host: 0.0.0.0
  port: 9000
  read_buffer_size: 4096
  shutdown_timeout: 3s
log:
  level: debug
auth:
  prefix: /v1
  jwt_secret: s3cret
  require_jwt: true
`)
	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if conf.Server.Addr() != "0.0.0.0:9000" {
		t.Fatalf("addr got=%q", conf.Server.Addr())
	}
	if conf.Server.ReadBufferSize != 4096 {
		t.Fatalf("read_buffer_size got=%d", conf.Server.ReadBufferSize)
	}
	if conf.Server.ShutdownTimeout != 3*time.Second {
		t.Fatalf("shutdown_timeout got=%v", conf.Server.ShutdownTimeout)
	}
	if conf.Log.Level != "debug" || conf.Auth.Prefix != "/v1" || !conf.Auth.RequireJWT || conf.Auth.JWTSecret != "s3cret" {
		t.Fatalf("unexpected conf: %+v", conf)
	}
}

func TestLoad_缺省字段使用默认值(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	conf, err := Load(writeConf(t, "log:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	d := Default()
	if conf.Server != d.Server {
		t.Fatalf("server got=%+v want=%+v", conf.Server, d.Server)
	}
	if conf.Auth.Prefix != DefaultAuthPrefix {
		t.Fatalf("auth.prefix got=%q", conf.Auth.Prefix)
	}
}

func TestLoad_环境变量覆盖(t *testing.T) {
	t.Setenv("IRON_SERVER_PORT", "8123")
	t.Setenv("JWT_SECRET", "from-env")
	conf, err := Load(writeConf(t, "server:\n  port: 9000\nauth:\n  jwt_secret: from-file\n"))
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if conf.Server.Port != 8123 {
		t.Fatalf("期望环境变量覆盖端口, got=%d", conf.Server.Port)
	}
	if conf.Auth.JWTSecret != "from-env" {
		t.Fatalf("期望 JWT_SECRET 覆盖, got=%q", conf.Auth.JWTSecret)
	}
}

func TestLoad_指定文件不存在(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if !errors.Is(err, errx.ErrInvalidConfig) {
		t.Fatalf("期望 ErrInvalidConfig, got=%v", err)
	}
}

func TestLoad_非法配置(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cases := []string{
		"server:\n  read_buffer_size: 0\n",
		"server:\n  port: 70000\n",
		"auth:\n  require_jwt: true\n",
	}
	for _, c := range cases {
		if _, err := Load(writeConf(t, c)); !errors.Is(err, errx.ErrInvalidConfig) {
			t.Fatalf("conf=%q 期望 ErrInvalidConfig, got=%v", c, err)
		}
	}
}

func TestFindConfigUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, defaultConfigRelPath)
	if err := os.WriteFile(want, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := findConfigUpward(nested); got != want {
		t.Fatalf("got=%q want=%q", got, want)
	}
}
