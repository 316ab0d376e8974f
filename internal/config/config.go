package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds runtime settings for the CLI and the API server.
type Config struct {
	Addr        string   `mapstructure:"addr"`
	LogLevel    string   `mapstructure:"log_level"`
	LogFormat   string   `mapstructure:"log_format"`
	MaxUploadMB int      `mapstructure:"max_upload_mb"`
	StaticDir   string   `mapstructure:"static_dir"`
	Patterns    Patterns `mapstructure:"patterns"`
}

// Patterns overrides the statement line expressions. Empty means built-in.
type Patterns struct {
	CardHeader  string `mapstructure:"card_header"`
	Transaction string `mapstructure:"transaction"`
}

// EnvPrefix is prepended to every environment variable, e.g. BILLSPLIT_ADDR.
const EnvPrefix = "BILLSPLIT"

// Load reads settings from the environment and, if path is not empty, from
// a config file. Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("max_upload_mb", 32)
	v.SetDefault("static_dir", "")
	v.SetDefault("patterns.card_header", "")
	v.SetDefault("patterns.transaction", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// BodyLimit returns the upload limit in bytes.
func (c *Config) BodyLimit() int {
	return c.MaxUploadMB << 20
}
