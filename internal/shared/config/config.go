package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	DefaultHost            = "127.0.0.1"
	DefaultPort            = 7878
	DefaultReadBufferSize  = 1024
	DefaultShutdownTimeout = 10 * time.Second
	DefaultAuthPrefix      = "/api"
)

type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Auth   AuthConfig   `yaml:"auth" mapstructure:"auth"`
}

type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// ReadBufferSize 是单次读取请求的缓冲区大小（字节），超出部分被截断。
	ReadBufferSize  int           `yaml:"read_buffer_size" mapstructure:"read_buffer_size"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	NodeID          int64         `yaml:"node_id" mapstructure:"node_id"` // snowflake 节点号
}

// Addr 返回 host:port；host 为空时监听所有地址。
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type AuthConfig struct {
	// Prefix 是需要 Authorization 头的路由分组前缀。
	Prefix    string `yaml:"prefix" mapstructure:"prefix"`
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	// RequireJWT 为 true 时 Authorization 必须是合法的 Bearer JWT，否则只校验存在。
	RequireJWT bool `yaml:"require_jwt" mapstructure:"require_jwt"`
}

// Default 返回不依赖配置文件的默认配置。
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadBufferSize:  DefaultReadBufferSize,
			ShutdownTimeout: DefaultShutdownTimeout,
			NodeID:          1,
		},
		Log: LogConfig{
			MaxSize: 100,
			Level:   "info",
		},
		Auth: AuthConfig{
			Prefix: DefaultAuthPrefix,
		},
	}
}

// Validate 校验启动前必须满足的约束。
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.ReadBufferSize <= 0 {
		return fmt.Errorf("server.read_buffer_size must be positive: %d", c.Server.ReadBufferSize)
	}
	if c.Auth.RequireJWT && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.require_jwt needs auth.jwt_secret or JWT_SECRET")
	}
	return nil
}
