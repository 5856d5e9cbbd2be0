package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	viper "github.com/spf13/viper"
	gotenv "github.com/subosito/gotenv"
	yaml "gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is where config init writes and Load looks by default
	DefaultConfigPath = ".desktop-mcp/config.yaml"

	// EnvPrefix prefixes every environment override, e.g. DESKTOP_MCP_BACKEND_NAME
	EnvPrefix = "DESKTOP_MCP"
)

// Config represents the server configuration
type Config struct {
	Backend    BackendConfig    `yaml:"backend" mapstructure:"backend"`
	Input      InputConfig      `yaml:"input" mapstructure:"input"`
	Window     WindowConfig     `yaml:"window" mapstructure:"window"`
	Screenshot ScreenshotConfig `yaml:"screenshot" mapstructure:"screenshot"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit" mapstructure:"rate_limit"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// BackendConfig selects the native automation backend
type BackendConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Display string `yaml:"display" mapstructure:"display"`
}

// InputConfig contains mouse and keyboard safety bounds
type InputConfig struct {
	MaxCoordinate     int `yaml:"max_coordinate" mapstructure:"max_coordinate"`
	MaxScroll         int `yaml:"max_scroll" mapstructure:"max_scroll"`
	MaxHoldMs         int `yaml:"max_hold_ms" mapstructure:"max_hold_ms"`
	DefaultMouseSpeed int `yaml:"default_mouse_speed" mapstructure:"default_mouse_speed"`
	TypeDelayMs       int `yaml:"type_delay_ms" mapstructure:"type_delay_ms"`
}

// WindowConfig tunes the window resolution engine
type WindowConfig struct {
	CommonApps     []string `yaml:"common_apps" mapstructure:"common_apps"`
	SettleDelayMs  int      `yaml:"settle_delay_ms" mapstructure:"settle_delay_ms"`
	FallbackWidth  int      `yaml:"fallback_width" mapstructure:"fallback_width"`
	FallbackHeight int      `yaml:"fallback_height" mapstructure:"fallback_height"`
	MinOrigin      int      `yaml:"min_origin" mapstructure:"min_origin"`
}

// ScreenshotConfig contains screenshot defaults
type ScreenshotConfig struct {
	Format           string `yaml:"format" mapstructure:"format"`
	Quality          int    `yaml:"quality" mapstructure:"quality"`
	Grayscale        bool   `yaml:"grayscale" mapstructure:"grayscale"`
	CompressionLevel int    `yaml:"compression_level" mapstructure:"compression_level"`
	MaxWidth         int    `yaml:"max_width" mapstructure:"max_width"`
	FallbackBound    int    `yaml:"fallback_bound" mapstructure:"fallback_bound"`
}

// RateLimitConfig limits how many input actions may run per window
type RateLimitConfig struct {
	Enabled             bool `yaml:"enabled" mapstructure:"enabled"`
	MaxActionsPerMinute int  `yaml:"max_actions_per_minute" mapstructure:"max_actions_per_minute"`
	WindowSeconds       int  `yaml:"window_seconds" mapstructure:"window_seconds"`
}

// ServerConfig contains MCP transport settings
type ServerConfig struct {
	Transport string `yaml:"transport" mapstructure:"transport"`
	Addr      string `yaml:"addr" mapstructure:"addr"`
	Path      string `yaml:"path" mapstructure:"path"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Debug bool   `yaml:"debug" mapstructure:"debug"`
	Dir   string `yaml:"dir" mapstructure:"dir"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Name:    "auto",
			Display: "",
		},
		Input: InputConfig{
			MaxCoordinate:     10000,
			MaxScroll:         1000,
			MaxHoldMs:         10000,
			DefaultMouseSpeed: 50,
			TypeDelayMs:       0,
		},
		Window: WindowConfig{
			CommonApps: []string{
				"Chrome", "Firefox", "Edge", "Safari", "Code",
				"Terminal", "Explorer", "Notepad", "Finder",
			},
			SettleDelayMs:  100,
			FallbackWidth:  800,
			FallbackHeight: 600,
			MinOrigin:      -10000,
		},
		Screenshot: ScreenshotConfig{
			Format:           "jpeg",
			Quality:          85,
			Grayscale:        true,
			CompressionLevel: 6,
			MaxWidth:         1280,
			FallbackBound:    1280,
		},
		RateLimit: RateLimitConfig{
			Enabled:             false,
			MaxActionsPerMinute: 120,
			WindowSeconds:       60,
		},
		Server: ServerConfig{
			Transport: "stdio",
			Addr:      ":3000",
			Path:      "/mcp",
		},
		Logging: LoggingConfig{
			Debug: false,
			Dir:   "",
		},
	}
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend.Name {
	case "auto", "robotgo", "win32", "x11", "virtual":
	default:
		errs = append(errs, fmt.Errorf("backend.name must be one of auto, robotgo, win32, x11, virtual (got %q)", c.Backend.Name))
	}

	if c.Input.MaxCoordinate <= 0 {
		errs = append(errs, fmt.Errorf("input.max_coordinate must be > 0"))
	}
	if c.Input.MaxScroll <= 0 {
		errs = append(errs, fmt.Errorf("input.max_scroll must be > 0"))
	}
	if c.Input.DefaultMouseSpeed < 1 || c.Input.DefaultMouseSpeed > 100 {
		errs = append(errs, fmt.Errorf("input.default_mouse_speed must be between 1 and 100"))
	}

	switch c.Screenshot.Format {
	case "jpeg", "png":
	default:
		errs = append(errs, fmt.Errorf("screenshot.format must be jpeg or png (got %q)", c.Screenshot.Format))
	}
	if c.Screenshot.Quality < 1 || c.Screenshot.Quality > 100 {
		errs = append(errs, fmt.Errorf("screenshot.quality must be between 1 and 100"))
	}
	if c.Screenshot.CompressionLevel < 0 || c.Screenshot.CompressionLevel > 9 {
		errs = append(errs, fmt.Errorf("screenshot.compression_level must be between 0 and 9"))
	}
	if c.Screenshot.FallbackBound <= 0 {
		errs = append(errs, fmt.Errorf("screenshot.fallback_bound must be > 0"))
	}

	switch c.Server.Transport {
	case "stdio", "http":
	default:
		errs = append(errs, fmt.Errorf("server.transport must be stdio or http (got %q)", c.Server.Transport))
	}

	return errors.Join(errs...)
}

// NewViper returns a viper instance seeded with the default configuration and
// environment overrides
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())
	return v
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("backend.name", cfg.Backend.Name)
	v.SetDefault("backend.display", cfg.Backend.Display)
	v.SetDefault("input.max_coordinate", cfg.Input.MaxCoordinate)
	v.SetDefault("input.max_scroll", cfg.Input.MaxScroll)
	v.SetDefault("input.max_hold_ms", cfg.Input.MaxHoldMs)
	v.SetDefault("input.default_mouse_speed", cfg.Input.DefaultMouseSpeed)
	v.SetDefault("input.type_delay_ms", cfg.Input.TypeDelayMs)
	v.SetDefault("window.common_apps", cfg.Window.CommonApps)
	v.SetDefault("window.settle_delay_ms", cfg.Window.SettleDelayMs)
	v.SetDefault("window.fallback_width", cfg.Window.FallbackWidth)
	v.SetDefault("window.fallback_height", cfg.Window.FallbackHeight)
	v.SetDefault("window.min_origin", cfg.Window.MinOrigin)
	v.SetDefault("screenshot.format", cfg.Screenshot.Format)
	v.SetDefault("screenshot.quality", cfg.Screenshot.Quality)
	v.SetDefault("screenshot.grayscale", cfg.Screenshot.Grayscale)
	v.SetDefault("screenshot.compression_level", cfg.Screenshot.CompressionLevel)
	v.SetDefault("screenshot.max_width", cfg.Screenshot.MaxWidth)
	v.SetDefault("screenshot.fallback_bound", cfg.Screenshot.FallbackBound)
	v.SetDefault("rate_limit.enabled", cfg.RateLimit.Enabled)
	v.SetDefault("rate_limit.max_actions_per_minute", cfg.RateLimit.MaxActionsPerMinute)
	v.SetDefault("rate_limit.window_seconds", cfg.RateLimit.WindowSeconds)
	v.SetDefault("server.transport", cfg.Server.Transport)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.path", cfg.Server.Path)
	v.SetDefault("logging.debug", cfg.Logging.Debug)
	v.SetDefault("logging.dir", cfg.Logging.Dir)
}

// Load reads configuration from the given path. A missing file is not an
// error; defaults and environment overrides still apply. A .env file in the
// working directory is loaded before environment variables are consulted.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := gotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	if configPath == "" {
		configPath = DefaultConfigPath
	}

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Marshal renders the configuration as YAML with two-space indentation
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close YAML encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// SaveConfig saves configuration to file, creating parent directories
func (c *Config) SaveConfig(configPath string) error {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
