package formats

import (
	"bufio"
	"bytes"
	"strings"

	"go.uber.org/zap"
)

// MaterialLibrary maps material names to diffuse texture paths.
type MaterialLibrary struct {
	textures map[string]string
	order    []string
}

// NewMaterialLibrary returns an empty library.
func NewMaterialLibrary() *MaterialLibrary {
	return &MaterialLibrary{textures: make(map[string]string)}
}

// Texture returns the texture path of a material.
func (l *MaterialLibrary) Texture(material string) (string, bool) {
	path, ok := l.textures[material]
	return path, ok
}

// Materials returns material names in definition order.
func (l *MaterialLibrary) Materials() []string {
	return l.order
}

// Len returns the number of textured materials.
func (l *MaterialLibrary) Len() int {
	return len(l.order)
}

// ParseMTL scans MTL text into lib and returns how many materials were
// added. Only newmtl/map_Kd pairs are kept; a material without map_Kd
// before the next newmtl is dropped. Malformed input is never an error.
func ParseMTL(data []byte, lib *MaterialLibrary) int {
	added := 0
	pending := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "newmtl "):
			name := line[len("newmtl "):]
			if _, exists := lib.textures[name]; exists {
				pending = ""
			} else {
				pending = name
			}
		case strings.HasPrefix(line, "map_Kd "):
			if pending == "" {
				continue
			}
			lib.textures[pending] = line[len("map_Kd "):]
			lib.order = append(lib.order, pending)
			added++
			pending = ""
		}
	}
	return added
}

// materialSet holds the libraries referenced by one model parse. Each
// distinct file is parsed once; lookups search in reference order.
type materialSet struct {
	ctx    *Context
	loaded map[string]bool
	libs   []*MaterialLibrary
}

func newMaterialSet(ctx *Context) *materialSet {
	return &materialSet{
		ctx:    ctx,
		loaded: make(map[string]bool),
	}
}

// load reads and parses a library file. Missing files leave the set
// unchanged.
func (s *materialSet) load(path string) {
	if s.loaded[path] {
		return
	}
	s.loaded[path] = true

	log := s.ctx.Log
	log.Info("prepare materials library", zap.String("path", path))

	if s.ctx.Assets == nil {
		log.Warn("no asset loader, materials ignored", zap.String("path", path))
		return
	}
	data, err := s.ctx.Assets.Load(path)
	if err != nil {
		log.Warn("materials library unavailable", zap.String("path", path), zap.Error(err))
		return
	}

	lib := NewMaterialLibrary()
	n := ParseMTL(data, lib)
	log.Info("materials found", zap.String("path", path), zap.Int("textures", n))
	for _, name := range lib.Materials() {
		tex, _ := lib.Texture(name)
		log.Debug("material", zap.String("material", name), zap.String("texture", tex))
	}
	s.libs = append(s.libs, lib)
}

func (s *materialSet) texture(material string) (string, bool) {
	for _, lib := range s.libs {
		if path, ok := lib.Texture(material); ok {
			return path, true
		}
	}
	return "", false
}
