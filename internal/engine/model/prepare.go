package model

import (
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/wfobj/internal/assets"
	"github.com/Faultbox/wfobj/internal/engine/gpu"
	"github.com/Faultbox/wfobj/internal/logger"
	"github.com/Faultbox/wfobj/pkg/formats"
)

// Prepare reads the OBJ file at name through loader and parses it into m.
// Material libraries and textures referenced by the file are resolved
// through the same loader. On failure m is erased before returning; a nil
// loader fails with assets.ErrNotFound.
func Prepare(name string, m *formats.Model, loader formats.AssetLoader, opts ...Option) error {
	ctx := m.Context()
	ctx.Assets = loader
	ctx.Log = logger.Named("wfobj")
	for _, opt := range opts {
		opt(ctx)
	}
	log := ctx.Log

	if m.Name == "" {
		m.Name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	}
	m.ResetExtents()

	log.Info("reading model", zap.String("path", name))

	if loader == nil {
		log.Error("no asset loader", zap.String("path", name))
		Erase(m, nil)
		return fmt.Errorf("reading model: %w: %s", assets.ErrNotFound, name)
	}

	data, err := loader.Load(name)
	if err != nil {
		log.Error("failed to read model", zap.String("path", name), zap.Error(err))
		Erase(m, nil)
		return fmt.Errorf("reading model: %w", err)
	}

	if err := formats.ParseOBJ(data, m); err != nil {
		Erase(m, nil)
		return fmt.Errorf("parsing model %s: %w", name, err)
	}

	return nil
}

// Erase releases the GPU resources of every shape, then the shapes and the
// parse context. Shared textures are destroyed once. dev may be nil when
// nothing was uploaded. Calling Erase again is a no-op.
func Erase(m *formats.Model, dev gpu.Device) {
	if dev != nil {
		destroyed := make(map[uint32]bool)
		for _, s := range m.Shapes {
			if s.VBO != 0 {
				dev.DestroyBuffer(s.VBO)
				s.VBO = 0
			}
			if s.IBO != 0 {
				dev.DestroyBuffer(s.IBO)
				s.IBO = 0
			}
			if s.Texture != 0 && !destroyed[s.Texture] {
				dev.DestroyTexture(s.Texture)
				destroyed[s.Texture] = true
			}
			s.Texture = 0
		}
	} else if m.HasContext() {
		for _, s := range m.Shapes {
			if s.VBO != 0 || s.IBO != 0 || s.Texture != 0 {
				m.Context().Log.Warn("erasing uploaded shape without a device",
					zap.String("shape", s.Name))
				break
			}
		}
	}

	m.Erase()
}
