package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	Cron     CronConfig     `mapstructure:"cron"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	Mode        string `mapstructure:"mode"`
	Timezone    string `mapstructure:"timezone"`
	PageSize    int    `mapstructure:"page_size"`
	SearchLimit int    `mapstructure:"search_limit"`
}

// MongoConfig 文档库配置
type MongoConfig struct {
	URL                    string `mapstructure:"url"`
	Database               string `mapstructure:"database"`
	ServerSelectionTimeout int    `mapstructure:"server_selection_timeout"`
	ConnectTimeout         int    `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	Bucket           string `mapstructure:"bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool   `mapstructure:"external_use_ssl"`
}

// AuthConfig 会话令牌配置
type AuthConfig struct {
	JWTSecret    string `mapstructure:"jwt_secret"`
	Issuer       string `mapstructure:"issuer"`
	TokenTTL     int    `mapstructure:"token_ttl"`
	CookieName   string `mapstructure:"cookie_name"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

// UploadConfig 上传限制, MaxSize 单位为字节
type UploadConfig struct {
	MaxSize int64 `mapstructure:"max_size"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type CronConfig struct {
	MediaCleanup   string `mapstructure:"media_cleanup"`
	MediaBatchSize int64  `mapstructure:"media_batch_size"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
