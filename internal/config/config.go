package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Bloom     BloomConfig     `mapstructure:"bloom"`
	RocketMQ  RocketMQConfig  `mapstructure:"rocketmq"`
	Store     StoreConfig     `mapstructure:"store"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig represents the tenant directory databases
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig represents MySQL configuration
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	SiteTTL  time.Duration `mapstructure:"site_ttl"`
}

// BloomConfig represents Bloom Filter configuration
type BloomConfig struct {
	Capacity  int64   `mapstructure:"capacity"`
	ErrorRate float64 `mapstructure:"error_rate"`
}

// RocketMQConfig represents RocketMQ configuration
type RocketMQConfig struct {
	NameServer string `mapstructure:"nameserver"`
	Topic      string `mapstructure:"topic"`
	Group      string `mapstructure:"group"`
}

// StoreConfig controls connections to the per-site event stores
type StoreConfig struct {
	MaxConnections int           `mapstructure:"max_connections"`
	IdleTTL        time.Duration `mapstructure:"idle_ttl"`
	DialTimeout    time.Duration `mapstructure:"dial_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	Breaker        BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig configures the per-store circuit breaker
type BreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MinRequests      uint32        `mapstructure:"min_requests"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
}

// AnalyticsConfig controls metric computation
type AnalyticsConfig struct {
	TopN     int    `mapstructure:"top_n"`
	Timezone string `mapstructure:"timezone"`
}

// DashboardConfig controls the metrics poller
type DashboardConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// Global config instance
var cfg *Config

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand environment variables
	cfg.Database.Redis.Password = expandEnv(v, cfg.Database.Redis.Password)
	cfg.Database.MySQL.DSN = expandEnv(v, cfg.Database.MySQL.DSN)

	if _, err := cfg.Analytics.Location(); err != nil {
		return nil, fmt.Errorf("invalid analytics.timezone: %w", err)
	}

	return cfg, nil
}

// Get returns the global config instance
func Get() *Config {
	return cfg
}

// Location returns the calendar used for day boundaries and buckets
func (a AnalyticsConfig) Location() (*time.Location, error) {
	if a.Timezone == "" || strings.EqualFold(a.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.redis.site_ttl", "10m")
	v.SetDefault("bloom.capacity", 10000000)
	v.SetDefault("bloom.error_rate", 0.01)
	v.SetDefault("rocketmq.topic", "site_purge")
	v.SetDefault("rocketmq.group", "site_purge_consumer_group")
	v.SetDefault("store.max_connections", 256)
	v.SetDefault("store.idle_ttl", "15m")
	v.SetDefault("store.dial_timeout", "5s")
	v.SetDefault("store.query_timeout", "30s")
	v.SetDefault("store.breaker.max_requests", 1)
	v.SetDefault("store.breaker.interval", "1m")
	v.SetDefault("store.breaker.timeout", "30s")
	v.SetDefault("store.breaker.min_requests", 5)
	v.SetDefault("store.breaker.failure_threshold", 0.6)
	v.SetDefault("analytics.top_n", 10)
	v.SetDefault("analytics.timezone", "UTC")
	v.SetDefault("dashboard.endpoint", "http://localhost:8080")
	v.SetDefault("dashboard.refresh_interval", "60s")
	v.SetDefault("dashboard.request_timeout", "20s")
}

// expandEnv expands environment variables in the string
func expandEnv(v *viper.Viper, s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		envKey := s[2 : len(s)-1]
		return v.GetString(envKey)
	}
	return s
}
