package config

import (
	"os"
	"path/filepath"
	"strings"

	"Iron/modules/kit/errx"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	defaultConfigRelPath = "configs/conf.yml"
	envPrefix            = "IRON"
	envJWTSecret         = "JWT_SECRET"
)

// Load 读取配置：
// 1) 传入 cfgName（相对/绝对路径）则必须存在；
// 2) 否则从当前目录开始向上查找 `configs/conf.yml`，找不到时只用默认值 + 环境变量。
// 环境变量 IRON_SERVER_PORT 之类覆盖文件，JWT_SECRET 覆盖 auth.jwt_secret。
func Load(cfgName string) (*Config, error) {
	v, err := newViper(cfgName)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// LoadAndWatch 在 Load 的基础上监听配置文件变更，变更后把新配置交给 onChange。
// 路由和监听地址在启动后不可变，onChange 只应处理日志级别这类可热更的项。
func LoadAndWatch(cfgName string, onChange func(Config)) (*Config, error) {
	v, err := newViper(cfgName)
	if err != nil {
		return nil, err
	}
	conf, err := decode(v)
	if err != nil {
		return nil, err
	}
	if v.ConfigFileUsed() == "" || onChange == nil {
		return conf, nil
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next, err := decode(v)
		if err != nil {
			// 变更后的文件不合法时保留旧配置。
			return
		}
		onChange(*next)
	})
	v.WatchConfig()
	return conf, nil
}

func newViper(cfgName string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := resolvePath(cfgName)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errx.ErrInvalidConfig.WithData("path", path).WithCause(err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_buffer_size", d.Server.ReadBufferSize)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout.String())
	v.SetDefault("server.node_id", d.Server.NodeID)
	v.SetDefault("log.file_dir", d.Log.FileDir)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.dev", d.Log.Dev)
	v.SetDefault("auth.prefix", d.Auth.Prefix)
	v.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	v.SetDefault("auth.require_jwt", d.Auth.RequireJWT)
}

func decode(v *viper.Viper) (*Config, error) {
	var conf Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&conf, hook); err != nil {
		return nil, errx.ErrInvalidConfig.WithData("path", v.ConfigFileUsed()).WithCause(err)
	}
	// 环境变量优先；未设置时沿用配置文件中的 jwt_secret。
	if secret := os.Getenv(envJWTSecret); secret != "" {
		conf.Auth.JWTSecret = secret
	}
	if err := conf.Validate(); err != nil {
		return nil, errx.ErrInvalidConfig.WithData("path", v.ConfigFileUsed()).WithCause(err)
	}
	return &conf, nil
}

func resolvePath(cfgName string) (string, error) {
	if cfgName != "" {
		path := cfgName
		if !filepath.IsAbs(path) {
			curDir, err := os.Getwd()
			if err != nil {
				return "", errx.ErrInvalidConfig.WithCause(err)
			}
			path = filepath.Join(curDir, cfgName)
		}
		if !fileExist(path) {
			return "", errx.ErrInvalidConfig.WithReason("config file not exist").WithData("path", path)
		}
		return path, nil
	}

	curDir, err := os.Getwd()
	if err != nil {
		return "", errx.ErrInvalidConfig.WithCause(err)
	}
	return findConfigUpward(curDir), nil
}

// findConfigUpward 从 startDir 向上查找 configs/conf.yml，找不到返回空串。
func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
