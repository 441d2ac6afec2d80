package config

import (
	"Chronicle/internal/pkg/consts"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	cfg, err := Load("./configs")
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Load 读取 dir 下的 config.yaml, 环境变量 CHRONICLE_* 覆盖同名键
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("chronicle")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.timezone", "Local")
	v.SetDefault("server.page_size", consts.DefaultPageSize)
	v.SetDefault("server.search_limit", 0)

	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "chronicle")
	v.SetDefault("mongo.server_selection_timeout", 10)
	v.SetDefault("mongo.connect_timeout", 10)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("minio.bucket", "chronicle-media")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "chronicle")
	v.SetDefault("auth.token_ttl", 3600)
	v.SetDefault("auth.cookie_name", "token")
	v.SetDefault("auth.cookie_secure", false)

	v.SetDefault("upload.max_size", 50<<20)

	v.SetDefault("cron.media_cleanup", "0 */10 * * * *")
	v.SetDefault("cron.media_batch_size", 100)
}

// Validate 检查启动所必需的配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret must be set")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Upload.MaxSize <= 0 {
		return errors.New("upload.max_size must be positive")
	}
	if c.Server.PageSize <= 0 {
		return errors.New("server.page_size must be positive")
	}
	return nil
}
