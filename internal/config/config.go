// Package config loads the service configuration from configs/config.yml,
// environment variables (HOTEL_ prefix) and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_climate/internal/models"

	"github.com/spf13/viper"
)

const envPrefix = "HOTEL"

type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Rooms     RoomsConfig     `mapstructure:"rooms"`
	Billing   BillingConfig   `mapstructure:"billing"`
	Tariff    TariffConfig    `mapstructure:"tariff"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Server    ServerConfig    `mapstructure:"server"`
	Retry     RetryConfig     `mapstructure:"retry"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type RoomsConfig struct {
	Count           int            `mapstructure:"count"`
	DefaultSettings SettingsConfig `mapstructure:"default_settings"`
}

type SettingsConfig struct {
	Temperature int    `mapstructure:"temperature"`
	FanSpeed    string `mapstructure:"fan_speed"`
	Mode        string `mapstructure:"mode"`
}

type BillingConfig struct {
	SettingsChange string `mapstructure:"settings_change"` // restart | retroactive
}

type TariffConfig struct {
	HourlyRate   float64 `mapstructure:"hourly_rate"`
	BaselineTemp int     `mapstructure:"baseline_temp"`
	PerDegree    float64 `mapstructure:"per_degree"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type RateLimitConfig struct {
	PerSec float64       `mapstructure:"per_sec"`
	Burst  int           `mapstructure:"burst"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

type RetryConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Backoff  time.Duration `mapstructure:"backoff"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.path", "hotel.db")
	v.SetDefault("rooms.count", 10)
	v.SetDefault("rooms.default_settings.temperature", 26)
	v.SetDefault("rooms.default_settings.fan_speed", "medium")
	v.SetDefault("rooms.default_settings.mode", "cool")
	v.SetDefault("billing.settings_change", "restart")
	v.SetDefault("tariff.hourly_rate", 10.0)
	v.SetDefault("tariff.baseline_temp", 26)
	v.SetDefault("tariff.per_degree", 0.02)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("rate_limit.per_sec", 1.0)
	v.SetDefault("rate_limit.burst", 5)
	v.SetDefault("rate_limit.ttl", 10*time.Minute)
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("retry.attempts", 3)
	v.SetDefault("retry.backoff", 50*time.Millisecond)
}

// Load reads config.yml from dir (a missing file is not an error), applies
// HOTEL_* environment overrides and validates the result.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Port) == "":
		return errors.New("config: port is empty")
	case c.DB.Path == "":
		return errors.New("config: db.path is empty")
	case c.Rooms.Count <= 0:
		return fmt.Errorf("config: rooms.count must be positive, got %d", c.Rooms.Count)
	case c.Log.Format != "console" && c.Log.Format != "json":
		return fmt.Errorf("config: log.format must be console or json, got %q", c.Log.Format)
	case c.Billing.SettingsChange != "restart" && c.Billing.SettingsChange != "retroactive":
		return fmt.Errorf("config: billing.settings_change must be restart or retroactive, got %q", c.Billing.SettingsChange)
	case c.Tariff.HourlyRate < 0 || c.Tariff.PerDegree < 0:
		return errors.New("config: tariff rates must not be negative")
	case c.Auth.SigningKey == "":
		return errors.New("config: auth.signing_key is required (set HOTEL_AUTH_SIGNING_KEY)")
	case c.Auth.TokenTTL <= 0:
		return errors.New("config: auth.token_ttl must be positive")
	case c.RateLimit.PerSec <= 0 || c.RateLimit.Burst <= 0:
		return errors.New("config: rate_limit.per_sec and rate_limit.burst must be positive")
	case c.Retry.Attempts < 1:
		return fmt.Errorf("config: retry.attempts must be at least 1, got %d", c.Retry.Attempts)
	}
	if _, err := c.Rooms.DefaultSettings.Settings(); err != nil {
		return fmt.Errorf("config: rooms.default_settings: %w", err)
	}
	return nil
}

// Settings converts the configured defaults into validated climate settings.
func (s SettingsConfig) Settings() (models.ClimateSettings, error) {
	fan, err := models.ParseFanSpeed(s.FanSpeed)
	if err != nil {
		return models.ClimateSettings{}, err
	}
	mode, err := models.ParseMode(s.Mode)
	if err != nil {
		return models.ClimateSettings{}, err
	}
	out := models.ClimateSettings{Temperature: s.Temperature, FanSpeed: fan, Mode: mode}
	if err := out.Validate(); err != nil {
		return models.ClimateSettings{}, err
	}
	return out, nil
}
