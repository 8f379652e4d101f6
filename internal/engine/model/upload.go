package model

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wfobj/internal/engine/gpu"
	"github.com/Faultbox/wfobj/pkg/formats"
)

// Upload creates the vertex buffer, index buffer and texture of every shape
// on dev, then frees the shape's CPU-side arrays. Shapes without geometry,
// including ones uploaded before, keep their handles and are skipped.
func Upload(m *formats.Model, dev gpu.Device) UploadStats {
	ctx := m.Context()
	log := ctx.Log
	start := time.Now()

	var stats UploadStats
	cache := NewTextureCache(ctx.Assets, dev, log)

	for _, s := range m.Shapes {
		if len(s.Vertices) == 0 || len(s.Indices) == 0 {
			log.Warn("skipping shape without geometry",
				zap.Int("id", s.ID),
				zap.String("shape", s.Name))
			stats.Skipped++
			continue
		}
		if s.IndexCount%3 != 0 {
			log.Warn("index count is not a multiple of 3",
				zap.String("shape", s.Name),
				zap.Int("indices", s.IndexCount))
		}

		s.VBO = dev.CreateVertexBuffer(s.Vertices)
		s.IBO = dev.CreateIndexBuffer(s.Indices)
		s.Texture = cache.Resolve(s.TexturePath)

		log.Info("shape uploaded",
			zap.Int("id", s.ID),
			zap.String("shape", s.Name),
			zap.Int("elements", s.ArraySize),
			zap.Int("indices", s.IndexCount),
			zap.Uint32("texture", s.Texture),
			zap.String("texture_path", s.TexturePath),
			zap.Bool("visible", s.Visible))

		stats.Shapes++
		stats.ArrayBytes += s.ArraySize * 4
		stats.IndexBytes += s.IndexCount * 4

		s.ReleaseArrays()
	}

	stats.Textures = cache.Len()
	cache.Close()
	stats.Elapsed = time.Since(start)

	log.Info("model uploaded",
		zap.String("model", m.Name),
		zap.Int("shapes", stats.Shapes),
		zap.Int("skipped", stats.Skipped),
		zap.Int("textures", stats.Textures),
		zap.Int("array_bytes", stats.ArrayBytes),
		zap.Int("index_bytes", stats.IndexBytes),
		zap.Duration("elapsed", stats.Elapsed))

	return stats
}
