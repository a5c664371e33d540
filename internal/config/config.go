// Package config loads wpfetch settings from defaults, an optional YAML file,
// a .env file and WPFETCH_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gauthierbraillon/wpfetch/internal/wordpress"
)

// EnvPrefix prefixes every environment variable wpfetch reads.
const EnvPrefix = "WPFETCH"

// Config holds wpfetch settings.
type Config struct {
	APIURL    string        `mapstructure:"api_url" json:"api_url" validate:"required,url"`
	SiteURL   string        `mapstructure:"site_url" json:"site_url" validate:"omitempty,url"`
	PerPage   int           `mapstructure:"per_page" json:"per_page" validate:"min=1,max=100"`
	BatchSize int           `mapstructure:"batch_size" json:"batch_size" validate:"min=1,max=100"`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout" validate:"min=0"`
	LogLevel  string        `mapstructure:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
	OutputDir string        `mapstructure:"output_dir" json:"output_dir" validate:"required"`
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. When empty, wpfetch.yaml is looked up
	// in Dir and its absence is not an error.
	File string
	// Dir is searched for wpfetch.yaml and .env. Defaults to ".".
	Dir string
}

// Load resolves the configuration and validates it.
func Load(opts Options) (Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	if err := godotenv.Load(dir + "/.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("wpfetch")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", wordpress.DefaultBaseURL)
	v.SetDefault("site_url", "")
	v.SetDefault("per_page", wordpress.DefaultPerPage)
	v.SetDefault("batch_size", wordpress.DefaultBatchSize)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("log_level", "warn")
	v.SetDefault("output_dir", "content/posts")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every invalid field in one error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Level maps LogLevel to a slog level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SiteRoot is the public site address permalinks hang off. It falls back to
// the API URL, which for WordPress is usually the same host.
func (c Config) SiteRoot() string {
	if c.SiteURL != "" {
		return strings.TrimRight(c.SiteURL, "/")
	}
	return strings.TrimRight(c.APIURL, "/")
}
