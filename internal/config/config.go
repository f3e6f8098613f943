package config

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"stored-image-server/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 用于管理应用配置

const (
	envPrefix         = "STORED_IMAGE"
	insecureJWTSecret = "stored_image_secret"
)

var (
	// 使用 atomic.Value 存储 *Config，实现无锁读取
	appConfig atomic.Value
	configMu  sync.Mutex // 仅用于写操作互斥
	configDir = "config"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Upload    UploadConfig    `mapstructure:"upload"`
	S3        S3Config        `mapstructure:"s3"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port              string `mapstructure:"port"`
	Mode              string `mapstructure:"mode"`
	MaxRequestBodyMB  int    `mapstructure:"max_request_body_mb"`
	MaxUploadBodyMB   int    `mapstructure:"max_upload_body_mb"`
	ShutdownTimeoutMS int    `mapstructure:"shutdown_timeout_ms"`
	// TrustedProxies 逗号分隔的代理 IP/CIDR，空值表示不信任任何代理
	TrustedProxies    string `mapstructure:"trusted_proxies"`
}

type DatabaseConfig struct {
	Type     string `mapstructure:"type"`     // sqlite, mysql, postgres
	Filename string `mapstructure:"filename"` // for sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"` // database name
	SSL      bool   `mapstructure:"ssl"`  // enable TLS/SSL
}

type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"` // 0 表示不过期
}

type UploadConfig struct {
	Driver          string `mapstructure:"driver"` // local, s3
	Path            string `mapstructure:"path"`
	URLPrefix       string `mapstructure:"url_prefix"`
	MaxRemoteSizeMB int    `mapstructure:"max_remote_size_mb"`
	FetchTimeoutSec int    `mapstructure:"fetch_timeout_sec"`
	CacheControl    string `mapstructure:"cache_control"`
}

type S3Config struct {
	Region       string `mapstructure:"region"`
	Bucket       string `mapstructure:"bucket"`
	BaseEndpoint string `mapstructure:"base_endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	PublicURL    string `mapstructure:"public_url"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type RateLimitConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	AuthRPS     float64 `mapstructure:"auth_rps"`
	AuthBurst   int     `mapstructure:"auth_burst"`
	UploadRPS   float64 `mapstructure:"upload_rps"`
	UploadBurst int     `mapstructure:"upload_burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, console
}

// Get 获取当前配置的快照（高性能无锁）
func Get() Config {
	val := appConfig.Load()
	if val == nil {
		return Config{}
	}
	c, ok := val.(*Config)
	if !ok {
		return Config{}
	}
	return *c
}

func GetConfigDir() string {
	return configDir
}

// Set 直接替换当前配置，主要供测试使用。
func Set(cfg Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig.Store(&cfg)
}

func InitConfig(customConfigDir string) error {
	// .env 文件不存在时忽略
	_ = godotenv.Load()

	v, err := initViper(customConfigDir)
	if err != nil {
		return err
	}
	if err := loadAndStore(v); err != nil {
		return err
	}
	if err := enforceJWTSecretSafety(); err != nil {
		return err
	}
	logger.Log.Info("✅ 配置加载成功")
	return nil
}

func initViper(customConfigDir string) (*viper.Viper, error) {
	v := viper.New()

	customConfigDir = strings.TrimSpace(customConfigDir)
	if customConfigDir == "" {
		customConfigDir = "config"
	}
	configDir = customConfigDir

	// 设置配置文件路径
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, err
		}
		logger.Log.Warn("⚠️  未找到配置文件，将仅使用环境变量或默认值")
	}

	// 规则：所有环境变量必须以 STORED_IMAGE_ 开头
	// 例如：yaml 中的 server.port 对应环境变量 STORED_IMAGE_SERVER_PORT
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_request_body_mb", 2)
	v.SetDefault("server.max_upload_body_mb", 10)
	v.SetDefault("server.shutdown_timeout_ms", 5000)
	v.SetDefault("server.trusted_proxies", "")
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.filename", "database/stored_image.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "stored_image")
	v.SetDefault("database.ssl", false)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("upload.driver", "local")
	v.SetDefault("upload.path", "uploads/attachments")
	v.SetDefault("upload.url_prefix", "/attachments/")
	v.SetDefault("upload.max_remote_size_mb", 5)
	v.SetDefault("upload.fetch_timeout_sec", 15)
	v.SetDefault("upload.cache_control", "public, max-age=31536000, immutable")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "stored-images")
	v.SetDefault("s3.base_endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.public_url", "")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "stored_image")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.auth_rps", 2)
	v.SetDefault("rate_limit.auth_burst", 10)
	v.SetDefault("rate_limit.upload_rps", 1)
	v.SetDefault("rate_limit.upload_burst", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// loadAndStore 解析并原子更新配置
func loadAndStore(v *viper.Viper) error {
	configMu.Lock()
	defer configMu.Unlock()

	var tempConfig Config
	if err := v.Unmarshal(&tempConfig); err != nil {
		return err
	}

	if tempConfig.Server.Mode != "release" && tempConfig.JWT.Secret == "" {
		logger.Log.Warn("⚠️ [开发模式警告] 未设置 JWT Secret，将使用默认不安全密钥进行开发")
		tempConfig.JWT.Secret = insecureJWTSecret
	}

	appConfig.Store(&tempConfig)
	return nil
}

var errInsecureJWTSecret = errors.New("生产模式(release)下必须设置安全的 JWT Secret，请设置环境变量 STORED_IMAGE_JWT_SECRET 或在配置文件中指定 jwt.secret")

func enforceJWTSecretSafety() error {
	curr := Get()
	if curr.Server.Mode == "release" {
		if curr.JWT.Secret == "" || curr.JWT.Secret == insecureJWTSecret {
			return errInsecureJWTSecret
		}
	}
	return nil
}
