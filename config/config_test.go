package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	t.Run("input limits", func(t *testing.T) {
		if cfg.Input.MaxCoordinate != 10000 {
			t.Errorf("Expected max coordinate 10000, got %d", cfg.Input.MaxCoordinate)
		}
		if cfg.Input.MaxScroll != 1000 {
			t.Errorf("Expected max scroll 1000, got %d", cfg.Input.MaxScroll)
		}
	})

	t.Run("window resolution", func(t *testing.T) {
		if cfg.Window.FallbackWidth != 800 || cfg.Window.FallbackHeight != 600 {
			t.Errorf("Expected fallback rect 800x600, got %dx%d", cfg.Window.FallbackWidth, cfg.Window.FallbackHeight)
		}
		if cfg.Window.MinOrigin != -10000 {
			t.Errorf("Expected min origin -10000, got %d", cfg.Window.MinOrigin)
		}
		if len(cfg.Window.CommonApps) == 0 {
			t.Error("Expected a default list of common applications")
		}
	})

	t.Run("screenshot", func(t *testing.T) {
		want := ScreenshotConfig{Format: "jpeg", Quality: 85, Grayscale: true, CompressionLevel: 6, MaxWidth: 1280, FallbackBound: 1280}
		if !reflect.DeepEqual(cfg.Screenshot, want) {
			t.Errorf("Expected screenshot defaults %+v, got %+v", want, cfg.Screenshot)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "unknown backend", mutate: func(c *Config) { c.Backend.Name = "wayland" }, wantErr: "backend.name"},
		{name: "quality too high", mutate: func(c *Config) { c.Screenshot.Quality = 101 }, wantErr: "screenshot.quality"},
		{name: "bad format", mutate: func(c *Config) { c.Screenshot.Format = "gif" }, wantErr: "screenshot.format"},
		{name: "compression out of range", mutate: func(c *Config) { c.Screenshot.CompressionLevel = 10 }, wantErr: "screenshot.compression_level"},
		{name: "mouse speed zero", mutate: func(c *Config) { c.Input.DefaultMouseSpeed = 0 }, wantErr: "input.default_mouse_speed"},
		{name: "bad transport", mutate: func(c *Config) { c.Server.Transport = "grpc" }, wantErr: "server.transport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		env         map[string]string
		validator   func(t *testing.T, cfg *Config)
		expectError bool
	}{
		{
			name:       "missing file uses defaults",
			configYAML: "",
			validator: func(t *testing.T, cfg *Config) {
				if !reflect.DeepEqual(cfg, DefaultConfig()) {
					t.Errorf("Expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name: "file overrides defaults",
			configYAML: `
backend:
  name: virtual
screenshot:
  format: png
  grayscale: false
window:
  common_apps: [Slack]
`,
			validator: func(t *testing.T, cfg *Config) {
				if cfg.Backend.Name != "virtual" {
					t.Errorf("Expected backend virtual, got %q", cfg.Backend.Name)
				}
				if cfg.Screenshot.Format != "png" || cfg.Screenshot.Grayscale {
					t.Errorf("Expected png without grayscale, got %+v", cfg.Screenshot)
				}
				if cfg.Screenshot.Quality != 85 {
					t.Errorf("Expected untouched quality 85, got %d", cfg.Screenshot.Quality)
				}
				if !reflect.DeepEqual(cfg.Window.CommonApps, []string{"Slack"}) {
					t.Errorf("Expected common apps [Slack], got %v", cfg.Window.CommonApps)
				}
			},
		},
		{
			name:       "environment overrides file",
			configYAML: "input:\n  max_scroll: 500\n",
			env:        map[string]string{"DESKTOP_MCP_INPUT_MAX_SCROLL": "250"},
			validator: func(t *testing.T, cfg *Config) {
				if cfg.Input.MaxScroll != 250 {
					t.Errorf("Expected env max scroll 250, got %d", cfg.Input.MaxScroll)
				}
			},
		},
		{
			name:        "invalid values are rejected",
			configYAML:  "screenshot:\n  quality: 0\n",
			expectError: true,
		},
		{
			name:        "malformed yaml",
			configYAML:  "backend: [unterminated\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if tt.configYAML != "" {
				if err := os.WriteFile(configPath, []byte(tt.configYAML), 0644); err != nil {
					t.Fatalf("Failed to write config file: %v", err)
				}
			}

			cfg, err := Load(NewViper(), configPath)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.validator(t, cfg)
		})
	}
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.Name = "x11"
	cfg.Backend.Display = ":1"
	cfg.RateLimit.Enabled = true

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.SaveConfig(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}

	if !strings.Contains(string(data), "  name: x11") {
		t.Errorf("Expected two-space indented YAML, got:\n%s", data)
	}

	var roundTrip Config
	if err := yaml.Unmarshal(data, &roundTrip); err != nil {
		t.Fatalf("Failed to parse saved config: %v", err)
	}
	if !reflect.DeepEqual(&roundTrip, cfg) {
		t.Errorf("Saved config differs:\nwant %+v\ngot  %+v", cfg, &roundTrip)
	}

	loaded, err := Load(NewViper(), configPath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.Backend.Display != ":1" || !loaded.RateLimit.Enabled {
		t.Errorf("Expected saved values after load, got %+v", loaded)
	}
}
