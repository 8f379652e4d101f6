// objinfo is a CLI utility for inspecting Wavefront OBJ models and MTL libraries.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Faultbox/wfobj/internal/assets"
	"github.com/Faultbox/wfobj/internal/config"
	"github.com/Faultbox/wfobj/internal/engine/gpu"
	"github.com/Faultbox/wfobj/internal/engine/model"
	"github.com/Faultbox/wfobj/internal/logger"
	"github.com/Faultbox/wfobj/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "shapes", "ls":
		cmdShapes(args)
	case "materials", "mtl":
		cmdMaterials(args)
	case "upload":
		cmdUpload(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objinfo - Wavefront OBJ/MTL inspection utility

Usage:
  objinfo <command> [options] <file>

Commands:
  info <model.obj>         Show model summary and bounding box
  shapes <model.obj>       List shapes with their sizes and textures
  materials <lib.mtl>      List materials that map to a texture
  upload <model.obj>       Run a headless upload and report GPU usage
  config [path]            Write the default config file

Options (info, shapes, upload):
  -asset-dir DIR           Additional asset directory (repeatable)
  -pack FILE               Zip asset pack (repeatable)
  -ignore-texture          Skip texture coordinates
  -color r,g,b             Override color (disables materials)
  -max-elements N          Per-buffer element cap (0 = unlimited)
  -debug                   Log parser diagnostics to stderr

Examples:
  objinfo info models/cube.obj
  objinfo shapes -ignore-texture models/house.obj
  objinfo materials models/house.mtl
  objinfo config ./wfobj.yaml`)
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// loadModel parses flags shared by the model commands and prepares the
// model file named by the first positional argument.
func loadModel(name string, args []string) *formats.Model {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var dirs, packs stringList
	fs.Var(&dirs, "asset-dir", "Additional asset directory (repeatable)")
	fs.Var(&packs, "pack", "Zip asset pack (repeatable)")
	ignoreTexture := fs.Bool("ignore-texture", false, "Skip texture coordinates")
	color := fs.String("color", "", "Override color as r,g,b")
	maxElements := fs.Int("max-elements", formats.DefaultMaxElements, "Per-buffer element cap (0 = unlimited)")
	debug := fs.Bool("debug", false, "Log parser diagnostics")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: objinfo %s [options] <model.obj>\n", name)
		os.Exit(1)
	}
	path := fs.Arg(0)

	if *debug {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := config.ModelConfig{IgnoreTexture: *ignoreTexture, MaxElements: *maxElements}
	if *color != "" {
		rgb, err := config.ParseColor(*color)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Color = rgb
	}

	mgr, err := assets.Open(append([]string{filepath.Dir(path)}, dirs...), packs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := cfg.NewModel("")
	if err := model.Prepare(filepath.Base(path), m, mgr, model.WithMaxElements(cfg.MaxElements)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func cmdInfo(args []string) {
	m := loadModel("info", args)
	defer model.Erase(m, nil)

	vertices := 0
	textures := make(map[string]int)
	colored := 0
	for _, s := range m.Shapes {
		vertices += s.ArraySize / s.Stride()
		if s.TexturePath != "" {
			textures[s.TexturePath]++
		}
		if s.WithColor {
			colored++
		}
	}

	fmt.Printf("Model:     %s\n", m.Name)
	fmt.Printf("Shapes:    %d\n", len(m.Shapes))
	fmt.Printf("Vertices:  %d\n", vertices)
	fmt.Printf("Triangles: %d\n", m.IndexCount()/3)
	if colored > 0 {
		fmt.Printf("Colored:   %d shapes with vertex colors\n", colored)
	}
	if len(m.Shapes) > 0 && m.Min[0] <= m.Max[0] {
		size := m.Max.Sub(m.Min)
		fmt.Printf("Bounds:    min (%g, %g, %g) max (%g, %g, %g)\n",
			m.Min[0], m.Min[1], m.Min[2], m.Max[0], m.Max[1], m.Max[2])
		fmt.Printf("Size:      %g x %g x %g\n", size[0], size[1], size[2])
	}

	if len(textures) > 0 {
		fmt.Println()
		fmt.Println("Textures:")
		paths := make([]string, 0, len(textures))
		for p := range textures {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Printf("  %-40s %d shapes\n", p, textures[p])
		}
	}
}

func cmdShapes(args []string) {
	m := loadModel("shapes", args)
	defer model.Erase(m, nil)

	fmt.Printf("%-4s %-24s %8s %8s %6s  %s\n", "ID", "NAME", "VERTICES", "INDICES", "STRIDE", "TEXTURE")
	for _, s := range m.Shapes {
		tex := s.TexturePath
		if tex == "" {
			tex = "-"
		}
		fmt.Printf("%-4d %-24s %8d %8d %6d  %s\n",
			s.ID, s.Name, s.ArraySize/s.Stride(), s.IndexCount, s.Stride(), tex)
	}
}

func cmdUpload(args []string) {
	m := loadModel("upload", args)
	dev := gpu.NewCounter()

	stats := model.Upload(m, dev)

	fmt.Printf("Shapes:    %d uploaded, %d skipped\n", stats.Shapes, stats.Skipped)
	fmt.Printf("Textures:  %d (%.2f KB)\n", dev.Textures, float64(dev.TextureBytes)/1024)
	fmt.Printf("Buffers:   %d (%.2f KB vertex, %.2f KB index)\n",
		dev.Buffers, float64(stats.ArrayBytes)/1024, float64(stats.IndexBytes)/1024)
	fmt.Printf("Elapsed:   %s\n", stats.Elapsed)

	model.Erase(m, dev)
	if dev.Live() != 0 {
		fmt.Fprintf(os.Stderr, "Error: %d resources left after erase\n", dev.Live())
		os.Exit(1)
	}
}

func cmdMaterials(args []string) {
	fs := flag.NewFlagSet("materials", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objinfo materials <lib.mtl>")
		os.Exit(1)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lib := formats.NewMaterialLibrary()
	formats.ParseMTL(data, lib)

	for _, name := range lib.Materials() {
		tex, _ := lib.Texture(name)
		fmt.Printf("%-24s %s\n", name, tex)
	}
	fmt.Fprintf(os.Stderr, "\n(%d materials with textures)\n", lib.Len())
}

func cmdConfig(args []string) {
	cfg := config.Default()

	var err error
	path := filepath.Join(config.ConfigDir(), "config.yaml")
	if len(args) > 0 {
		path = args[0]
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
