package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// ClientConfig настройки CLI клиента
type ClientConfig struct {
	Log                  LogConfig     `mapstructure:"log" yaml:"log"`
	ServerURL            string        `mapstructure:"server_url" yaml:"server_url"`
	Token                string        `mapstructure:"token" yaml:"token,omitempty"`
	CachePath            string        `mapstructure:"cache_path" yaml:"cache_path"`
	RedisURL             string        `mapstructure:"redis_url" yaml:"redis_url,omitempty"`
	RedisPrefix          string        `mapstructure:"redis_prefix" yaml:"redis_prefix"`
	Timeout              time.Duration `mapstructure:"timeout" yaml:"timeout"`
	FanOut               int           `mapstructure:"fan_out" yaml:"fan_out"`
	VersionPreconditions bool          `mapstructure:"version_preconditions" yaml:"version_preconditions"`
}

// SetClientDefaults регистрирует значения по умолчанию. Каждый ключ должен
// иметь default, иначе viper не подхватит его из окружения при Unmarshal
func SetClientDefaults(v *viper.Viper) {
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("token", "")
	v.SetDefault("cache_path", "edukeeper-cache.db")
	v.SetDefault("redis_url", "")
	v.SetDefault("redis_prefix", "edukeeper")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("fan_out", 4)
	v.SetDefault("version_preconditions", false)
	setLogDefaults(v)
}

// LoadClient читает конфигурацию клиента из v
func LoadClient(v *viper.Viper) (*ClientConfig, error) {
	SetClientDefaults(v)
	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode client config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет конфигурацию клиента
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: server_url %q is not an absolute URL", ErrInvalidConfig, c.ServerURL)
	}
	if c.CachePath == "" && c.RedisURL == "" {
		return fmt.Errorf("%w: either cache_path or redis_url is required", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.FanOut < 1 {
		return fmt.Errorf("%w: fan_out must be at least 1", ErrInvalidConfig)
	}
	return c.Log.Validate()
}
