package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	JWTSecret   string            `mapstructure:"jwt_secret"`
	I18n        I18nConfig        `mapstructure:"i18n"`
	Models      ModelsConfig      `mapstructure:"models"`
	Log         LogConfig         `mapstructure:"log"`
	Permissions PermissionsConfig `mapstructure:"permissions"`
	State       StateConfig       `mapstructure:"state"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	PoolSize int    `mapstructure:"pool_size"`
	Path     string `mapstructure:"path"` // directory for the SQLite database file
}

// DSN returns the driver-specific data source name.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		if d.Name == ":memory:" {
			return d.Name
		}
		return d.Path + "/" + d.Name + ".db"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig configures the shared cache. When disabled an in-process
// cache is used instead.
type RedisConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	Prefix      string        `mapstructure:"prefix"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type I18nConfig struct {
	Dir           string `mapstructure:"dir"`
	DefaultLocale string `mapstructure:"default_locale"`
}

type ModelsConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

type PermissionsConfig struct {
	// SuperRole is granted every permission key at resolve time.
	SuperRole string        `mapstructure:"super_role"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	// Sync inserts every descriptor permission key into the permissions
	// table on startup.
	Sync bool `mapstructure:"sync"`
}

type StateConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../..")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.driver", "postgres")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.pool_size", 10)
	viper.SetDefault("database.path", "./data")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "datatable:")
	viper.SetDefault("redis.dial_timeout", 5*time.Second)
	viper.SetDefault("jwt_secret", "changeme-secret")
	viper.SetDefault("i18n.dir", "./locales")
	viper.SetDefault("i18n.default_locale", "en")
	viper.SetDefault("models.path", "./config/models.yaml")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("permissions.super_role", "Super Admin")
	viper.SetDefault("permissions.cache_ttl", 5*time.Minute)
	viper.SetDefault("permissions.sync", true)
	viper.SetDefault("state.ttl", 30*24*time.Hour)
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
