package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/wfobj/pkg/formats"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.Assets.Dirs) != 1 || cfg.Assets.Dirs[0] != "." {
		t.Errorf("expected asset dirs [.], got %v", cfg.Assets.Dirs)
	}
	if len(cfg.Assets.Packs) != 0 {
		t.Errorf("expected no packs, got %v", cfg.Assets.Packs)
	}

	if cfg.Model.IgnoreTexture {
		t.Error("expected ignore_texture to be false by default")
	}
	if cfg.Model.MaxElements != formats.DefaultMaxElements {
		t.Errorf("expected max elements %d, got %d", formats.DefaultMaxElements, cfg.Model.MaxElements)
	}
	if cfg.Model.OverrideColor() != nil {
		t.Error("expected no override color by default")
	}

	if cfg.Viewer.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Viewer.Height)
	}
	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Viewer.Watch {
		t.Error("expected watch to be false by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
assets:
  dirs: ["models", "textures"]
  packs: ["base.zip"]

model:
  ignore_texture: true
  color: [1, 0.5, 0]
  max_elements: 5000

viewer:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  watch: true

logging:
  level: "debug"
  log_file: "wfobj.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(cfg.Assets.Dirs) != 2 || cfg.Assets.Dirs[1] != "textures" {
		t.Errorf("unexpected asset dirs %v", cfg.Assets.Dirs)
	}
	if len(cfg.Assets.Packs) != 1 || cfg.Assets.Packs[0] != "base.zip" {
		t.Errorf("unexpected packs %v", cfg.Assets.Packs)
	}

	if !cfg.Model.IgnoreTexture {
		t.Error("expected ignore_texture to be true")
	}
	if cfg.Model.MaxElements != 5000 {
		t.Errorf("expected max elements 5000, got %d", cfg.Model.MaxElements)
	}
	c := cfg.Model.OverrideColor()
	if c == nil || *c != (formats.Color{R: 1, G: 0.5, B: 0}) {
		t.Errorf("unexpected override color %+v", c)
	}

	if cfg.Viewer.Width != 1920 || cfg.Viewer.Height != 1080 {
		t.Errorf("unexpected viewer size %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if !cfg.Viewer.Fullscreen || cfg.Viewer.VSync || !cfg.Viewer.Watch {
		t.Errorf("unexpected viewer flags %+v", cfg.Viewer)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "wfobj.log" {
		t.Errorf("expected log file 'wfobj.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
viewer:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestOverrideColor(t *testing.T) {
	tests := []struct {
		name  string
		color []float32
		isSet bool
	}{
		{"unset", nil, false},
		{"rgb", []float32{0.1, 0.2, 0.3}, true},
		{"too short", []float32{1, 1}, false},
		{"too long", []float32{1, 1, 1, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ModelConfig{Color: tt.color}.OverrideColor()
			if (got != nil) != tt.isSet {
				t.Errorf("OverrideColor() = %+v, want set=%v", got, tt.isSet)
			}
		})
	}
}

func TestModelConfig_NewModel(t *testing.T) {
	m := ModelConfig{IgnoreTexture: true, Color: []float32{1, 0, 0}}.NewModel("cube")

	if m.Name != "cube" || !m.IgnoreTexture {
		t.Errorf("unexpected model %+v", m)
	}
	if m.Color == nil || m.Color.R != 1 {
		t.Errorf("expected override color applied, got %+v", m.Color)
	}
	if m.HasContext() {
		t.Error("expected no context before parsing")
	}
}

func TestParseColor(t *testing.T) {
	rgb, err := ParseColor("1, 0.5,0")
	if err != nil {
		t.Fatalf("ParseColor() error = %v", err)
	}
	if rgb[0] != 1 || rgb[1] != 0.5 || rgb[2] != 0 {
		t.Errorf("unexpected color %v", rgb)
	}

	for _, bad := range []string{"1,2", "a,b,c", ""} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) expected error", bad)
		}
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "wfobj.yaml")
	if err := os.WriteFile(configPath, []byte("viewer:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find wfobj.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "ignore texture flag",
			setup: func() { *flagIgnoreTexture = true },
			verify: func(cfg *Config) {
				if !cfg.Model.IgnoreTexture {
					t.Error("expected ignore_texture with flag")
				}
			},
			teardown: func() { *flagIgnoreTexture = false },
		},
		{
			name:  "color flag",
			setup: func() { *flagColor = "0.2,0.4,0.6" },
			verify: func(cfg *Config) {
				if cfg.Model.OverrideColor() == nil {
					t.Error("expected override color with flag")
				}
			},
			teardown: func() { *flagColor = "" },
		},
		{
			name:  "max elements flag",
			setup: func() { *flagMaxElements = 0 },
			verify: func(cfg *Config) {
				if cfg.Model.MaxElements != 0 {
					t.Errorf("expected unlimited max elements, got %d", cfg.Model.MaxElements)
				}
			},
			teardown: func() { *flagMaxElements = -1 },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.Width != 2560 || cfg.Viewer.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "asset dir flag",
			setup: func() { flagAssetDirs = stringList{"extra"} },
			verify: func(cfg *Config) {
				if len(cfg.Assets.Dirs) != 2 || cfg.Assets.Dirs[1] != "extra" {
					t.Errorf("expected extra asset dir appended, got %v", cfg.Assets.Dirs)
				}
			},
			teardown: func() { flagAssetDirs = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags() error = %v", err)
			}
			tt.verify(cfg)
		})
	}
}

func TestApplyFlagsBadColor(t *testing.T) {
	*flagColor = "red"
	defer func() { *flagColor = "" }()

	if err := applyFlags(Default()); err == nil {
		t.Error("expected error for malformed color flag")
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
viewer:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Viewer.Height)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Model.Color = []float32{1, 1, 1}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Model.OverrideColor() == nil {
		t.Error("expected override color to survive save")
	}
}
