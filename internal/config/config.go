// Package config loads texbox settings for the CLI and the HTTP server.
//
// Settings are layered: built-in defaults, then the config file
// (texbox.toml in the XDG config directory, or an explicit path), then
// TEXBOX_* environment variables, then any flags bound to the viper
// instance. Keys use dotted names such as "render.style"; the matching
// environment variable is TEXBOX_RENDER_STYLE.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/texbox/pkg/cache"
	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/pipeline"
)

const (
	// AppName names the config and cache directories.
	AppName = "texbox"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "TEXBOX"

	// DefaultAddr is the server listen address.
	DefaultAddr = ":8080"

	// DefaultMaxBody bounds request bodies accepted by the server.
	DefaultMaxBody = 1 << 20
)

// Config holds all settings.
type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Server ServerConfig `mapstructure:"server"`
}

// RenderConfig holds pipeline defaults applied to every conversion.
type RenderConfig struct {
	Style   string   `mapstructure:"style"`
	Size    float64  `mapstructure:"size"`
	Padding float64  `mapstructure:"padding"`
	Scale   float64  `mapstructure:"scale"`
	Formats []string `mapstructure:"formats"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string `mapstructure:"backend"`
	Dir      string `mapstructure:"dir"`
	RedisURL string `mapstructure:"redis_url"`
	MongoURI string `mapstructure:"mongo_uri"`
	Prefix   string `mapstructure:"prefix"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr    string        `mapstructure:"addr"`
	MaxBody int64         `mapstructure:"max_body"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SetDefaults registers the default value of every key. Keys without a
// default are invisible to Unmarshal, so every key must appear here.
func SetDefaults(v *viper.Viper) {
	// -- Render --
	v.SetDefault("render.style", pipeline.DefaultStyle)
	v.SetDefault("render.size", pipeline.DefaultSize)
	v.SetDefault("render.padding", 0.0)
	v.SetDefault("render.scale", pipeline.DefaultScale)
	v.SetDefault("render.formats", []string{pipeline.FormatSVG})

	// -- Cache --
	v.SetDefault("cache.backend", cache.BackendFile)
	dir, _ := CacheDir()
	v.SetDefault("cache.dir", dir)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.mongo_uri", "")
	v.SetDefault("cache.prefix", "")

	// -- Server --
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.max_body", DefaultMaxBody)
	v.SetDefault("server.timeout", "30s")
}

// NewViper returns a viper instance with defaults, the environment and
// the config file loaded. An empty path searches the XDG config
// directory and the working directory; a missing file there is not an
// error. An explicit path must exist.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("toml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "read config")
		}
	}
	return v, nil
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the configuration at path (see NewViper) and decodes it.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// Default returns the built-in configuration, ignoring files and the
// environment.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, err, "render.style")
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, err, "render.formats")
	}
	if c.Render.Size <= 0 {
		return errors.New(errors.ErrCodeConfig, "render.size must be positive")
	}
	if c.Render.Scale <= 0 {
		return errors.New(errors.ErrCodeConfig, "render.scale must be positive")
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendNone, "":
	case cache.BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeConfig, "cache.redis_url is required for the redis backend")
		}
	case cache.BackendMongo:
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeConfig, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeConfig, "unknown cache.backend %q (must be one of: file, redis, mongo, none)", c.Cache.Backend)
	}
	if c.Server.MaxBody <= 0 {
		return errors.New(errors.ErrCodeConfig, "server.max_body must be positive")
	}
	return nil
}

// CacheOptions converts the cache section for cache.Open.
func (c *Config) CacheOptions() cache.Config {
	return cache.Config{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		RedisURL: c.Cache.RedisURL,
		MongoURI: c.Cache.MongoURI,
		Prefix:   c.Cache.Prefix,
	}
}

// PipelineDefaults fills unset render fields of opts from the config.
func (c *Config) PipelineDefaults(opts *pipeline.Options) {
	if opts.Style == "" {
		opts.Style = c.Render.Style
	}
	if opts.Size == 0 {
		opts.Size = c.Render.Size
	}
	if opts.Padding == 0 {
		opts.Padding = c.Render.Padding
	}
	if opts.Scale == 0 {
		opts.Scale = c.Render.Scale
	}
	if len(opts.Formats) == 0 {
		opts.Formats = append([]string(nil), c.Render.Formats...)
	}
}

// =============================================================================
// Paths
// =============================================================================

// Dir returns the config directory using the XDG standard (~/.config/texbox/).
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the cache directory using the XDG standard (~/.cache/texbox/).
func CacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
