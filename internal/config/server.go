package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	minSecretLen = 32
)

// StorageConfig настройки хранилища документов
type StorageConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

// JWTConfig настройки проверки токенов
type JWTConfig struct {
	Secret   string        `mapstructure:"secret" yaml:"secret"`
	Issuer   string        `mapstructure:"issuer" yaml:"issuer"`
	TokenTTL time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
}

// RateLimitConfig лимиты запросов на клиента
type RateLimitConfig struct {
	Window    time.Duration `mapstructure:"window" yaml:"window"`
	Rate      int           `mapstructure:"rate" yaml:"rate"`
	BatchRate int           `mapstructure:"batch_rate" yaml:"batch_rate"`
}

// ServerConfig настройки сервера документов
type ServerConfig struct {
	Storage         StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Log             LogConfig       `mapstructure:"log" yaml:"log"`
	JWT             JWTConfig       `mapstructure:"jwt" yaml:"jwt"`
	Addr            string          `mapstructure:"addr" yaml:"addr"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// SetServerDefaults регистрирует значения по умолчанию сервера
func SetServerDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.dsn", "edukeeper.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "edukeeper")
	v.SetDefault("jwt.token_ttl", 24*time.Hour)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("rate_limit.rate", 300)
	v.SetDefault("rate_limit.batch_rate", 60)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	setLogDefaults(v)
}

// LoadServer читает конфигурацию сервера из v
func LoadServer(v *viper.Viper) (*ServerConfig, error) {
	SetServerDefaults(v)
	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode server config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет конфигурацию сервера
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalidConfig)
	}

	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: storage.driver %q (want sqlite or postgres)", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Storage.DSN == "" {
		return fmt.Errorf("%w: storage.dsn is required", ErrInvalidConfig)
	}

	if len(c.JWT.Secret) < minSecretLen {
		return fmt.Errorf("%w: jwt.secret must be at least %d bytes", ErrInvalidConfig, minSecretLen)
	}
	if c.JWT.TokenTTL <= 0 {
		return fmt.Errorf("%w: jwt.token_ttl must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Window <= 0 || c.RateLimit.Rate < 1 || c.RateLimit.BatchRate < 1 {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}

	return c.Log.Validate()
}
