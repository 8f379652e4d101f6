package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagIgnoreTexture = flag.Bool("ignore-texture", false, "Skip texture coordinates and materials' textures")
	flagColor         = flag.String("color", "", "Override color as r,g,b (disables materials)")
	flagMaxElements   = flag.Int("max-elements", -1, "Per-buffer element cap (0 = unlimited)")
	flagWindowed      = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen    = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth         = flag.Int("width", 0, "Window width")
	flagHeight        = flag.Int("height", 0, "Window height")
	flagWatch         = flag.Bool("watch", false, "Reload the model when the file changes")
	flagAssetDirs     stringList
)

func init() {
	flag.Var(&flagAssetDirs, "asset-dir", "Additional asset directory (repeatable)")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ParseColor parses "r,g,b" into three floats.
func ParseColor(s string) ([]float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("color %q: expected r,g,b", s)
	}
	rgb := make([]float32, 3)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", s, err)
		}
		rgb[i] = float32(f)
	}
	return rgb, nil
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagIgnoreTexture {
		cfg.Model.IgnoreTexture = true
	}
	if *flagColor != "" {
		rgb, err := ParseColor(*flagColor)
		if err != nil {
			return err
		}
		cfg.Model.Color = rgb
	}
	if *flagMaxElements >= 0 {
		cfg.Model.MaxElements = *flagMaxElements
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	if *flagWatch {
		cfg.Viewer.Watch = true
	}
	cfg.Assets.Dirs = append(cfg.Assets.Dirs, flagAssetDirs...)
	return nil
}
