package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all server settings. Every key has a default and can be
// overridden through the environment with a FOODGRAM_ prefix, e.g.
// FOODGRAM_DB_PATH or FOODGRAM_SHORT_CODE_LENGTH.
type Config struct {
	Port     string `mapstructure:"port"`
	BaseURL  string `mapstructure:"base_url"`
	DBPath   string `mapstructure:"db_path"`
	MediaDir string `mapstructure:"media_dir"`
	SeedDir  string `mapstructure:"seed_dir"`

	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`

	MinCookingTime int `mapstructure:"min_cooking_time"`
	MaxCookingTime int `mapstructure:"max_cooking_time"`

	ShortCodeAlphabet string `mapstructure:"short_code_alphabet"`
	ShortCodeLength   int    `mapstructure:"short_code_length"`

	PageSize    int `mapstructure:"page_size"`
	MaxPageSize int `mapstructure:"max_page_size"`

	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("db_path", "foodgram.db")
	v.SetDefault("media_dir", "media")
	v.SetDefault("seed_dir", "")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl_hours", 24)

	v.SetDefault("min_cooking_time", 1)
	v.SetDefault("max_cooking_time", 32000)

	v.SetDefault("short_code_alphabet", "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	v.SetDefault("short_code_length", 6)

	v.SetDefault("page_size", 6)
	v.SetDefault("max_page_size", 100)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// Load builds the configuration from defaults and environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FOODGRAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.MinCookingTime < 1 {
		return nil, fmt.Errorf("min_cooking_time must be at least 1, got %d", cfg.MinCookingTime)
	}
	if cfg.MaxCookingTime < cfg.MinCookingTime {
		return nil, fmt.Errorf("max_cooking_time %d is below min_cooking_time %d", cfg.MaxCookingTime, cfg.MinCookingTime)
	}
	if cfg.ShortCodeLength < 1 || len(cfg.ShortCodeAlphabet) < 2 {
		return nil, fmt.Errorf("short code settings leave no code space")
	}

	return cfg, nil
}
