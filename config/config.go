package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig   `mapstructure:"server"`
	Database       DatabaseConfig `mapstructure:"database"`
	Redis          RedisConfig    `mapstructure:"redis"`
	Store          StoreConfig    `mapstructure:"store"`
	JWT            JWTConfig      `mapstructure:"jwt"`
	CORS           CORSConfig     `mapstructure:"cors"`
	Log            LogConfig      `mapstructure:"log"`
	Payment        PaymentConfig  `mapstructure:"payment"`
	Wallet         WalletConfig   `mapstructure:"wallet"`
	Plans          []PlanConfig   `mapstructure:"plans"`
	CaregiverPrice float64        `mapstructure:"caregiver_price"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// StoreConfig 文档存储配置
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`     // mysql, redis, memory
	KeyPrefix string `mapstructure:"key_prefix"` // 仅 redis 使用
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // 为空时只输出到控制台
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// PaymentConfig 模拟支付参数
type PaymentConfig struct {
	TopUpSuccessRate      float64       `mapstructure:"topup_success_rate"`
	EnrollmentSuccessRate float64       `mapstructure:"enrollment_success_rate"`
	Delay                 time.Duration `mapstructure:"delay"`
}

type WalletConfig struct {
	DefaultBalance float64 `mapstructure:"default_balance"`
}

// PlanConfig 套餐目录条目
type PlanConfig struct {
	Tier          int      `mapstructure:"tier"`
	ID            string   `mapstructure:"id"`
	Title         string   `mapstructure:"title"`
	Subtitle      string   `mapstructure:"subtitle"`
	Price         float64  `mapstructure:"price"`
	Period        string   `mapstructure:"period"`
	OriginalPrice float64  `mapstructure:"original_price"`
	Savings       string   `mapstructure:"savings"`
	Popular       bool     `mapstructure:"popular"`
	Trial         bool     `mapstructure:"trial"`
	Features      []string `mapstructure:"features"`
	ColorScheme   string   `mapstructure:"color_scheme"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("store.driver", "mysql")
	v.SetDefault("store.key_prefix", "agedcare:")
	v.SetDefault("jwt.expire_hours", 72)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("payment.topup_success_rate", 0.9)
	v.SetDefault("payment.enrollment_success_rate", 0.8)
	v.SetDefault("payment.delay", "1500ms")
	v.SetDefault("wallet.default_balance", 100.0)
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	// 环境变量覆盖，例如 STORE_DRIVER=redis
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
