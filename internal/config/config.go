// Package config handles loader and viewer configuration.
package config

import "github.com/Faultbox/wfobj/pkg/formats"

// Config holds all settings.
type Config struct {
	Assets  AssetsConfig  `yaml:"assets"`
	Model   ModelConfig   `yaml:"model"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// AssetsConfig holds the roots searched for model, material and texture paths.
type AssetsConfig struct {
	Dirs  []string `yaml:"dirs"`  // Directory roots, last = highest priority
	Packs []string `yaml:"packs"` // Zip asset packs, searched after dirs
}

// ModelConfig holds parsing options applied to every loaded model.
type ModelConfig struct {
	IgnoreTexture bool      `yaml:"ignore_texture"`
	Color         []float32 `yaml:"color"`        // [r, g, b] override; empty leaves materials in charge
	MaxElements   int       `yaml:"max_elements"` // Per-buffer cap, 0 = unlimited
}

// OverrideColor returns the configured override color, or nil when unset
// or not exactly three components.
func (m ModelConfig) OverrideColor() *formats.Color {
	if len(m.Color) != 3 {
		return nil
	}
	return &formats.Color{R: m.Color[0], G: m.Color[1], B: m.Color[2]}
}

// NewModel returns an empty model named name with these options applied.
func (m ModelConfig) NewModel(name string) *formats.Model {
	model := formats.NewModel(name)
	model.IgnoreTexture = m.IgnoreTexture
	model.Color = m.OverrideColor()
	return model
}

// ViewerConfig holds display settings for the model viewer.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Watch      bool `yaml:"watch"` // Reload the model when its file changes
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{
			Dirs: []string{"."},
		},
		Model: ModelConfig{
			IgnoreTexture: false,
			MaxElements:   formats.DefaultMaxElements,
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
