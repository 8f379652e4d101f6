package model

import (
	"go.uber.org/zap"

	"github.com/Faultbox/wfobj/internal/engine/gpu"
	"github.com/Faultbox/wfobj/internal/engine/texture"
	"github.com/Faultbox/wfobj/pkg/formats"
)

// DecodeFunc decodes image file data. name selects a decoder for formats
// without a signature.
type DecodeFunc func(data []byte, name string) (*texture.Image, error)

// defaultPixel is the 1x1 white texture bound to untextured shapes.
var defaultPixel = []byte{0xff, 0xff, 0xff}

// TextureCache maps texture paths to GPU handles for one upload pass.
// Each distinct path is loaded, decoded and uploaded at most once.
// Failed paths are not cached and are retried on the next lookup.
type TextureCache struct {
	// Decode defaults to texture.Decode.
	Decode DecodeFunc

	assets  formats.AssetLoader
	device  gpu.Device
	log     *zap.Logger
	entries map[string]uint32

	def     uint32
	defUsed bool
}

// NewTextureCache creates a cache and its default texture on dev.
func NewTextureCache(assets formats.AssetLoader, dev gpu.Device, log *zap.Logger) *TextureCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &TextureCache{
		Decode:  texture.Decode,
		assets:  assets,
		device:  dev,
		log:     log,
		entries: make(map[string]uint32),
		def:     dev.CreateTexture(defaultPixel, 1, 1, 3),
	}
}

// Default returns the default texture handle.
func (c *TextureCache) Default() uint32 {
	return c.def
}

// Len returns the number of cached paths.
func (c *TextureCache) Len() int {
	return len(c.entries)
}

// Resolve returns the texture for path, uploading it on first use. An empty
// path, or one that cannot be read or decoded, yields the default texture.
func (c *TextureCache) Resolve(path string) uint32 {
	if path == "" {
		return c.useDefault()
	}
	if tex, ok := c.entries[path]; ok {
		return tex
	}
	if c.assets == nil {
		c.log.Warn("no asset source for texture", zap.String("path", path))
		return c.useDefault()
	}

	data, err := c.assets.Load(path)
	if err != nil {
		c.log.Warn("failed to read texture", zap.String("path", path), zap.Error(err))
		return c.useDefault()
	}
	img, err := c.Decode(data, path)
	if err != nil {
		c.log.Warn("failed to decode texture", zap.String("path", path), zap.Error(err))
		return c.useDefault()
	}

	tex := c.device.CreateTexture(img.Pix, img.Width, img.Height, img.Channels)
	c.entries[path] = tex

	c.log.Debug("texture uploaded",
		zap.String("path", path),
		zap.Uint32("texture", tex),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("channels", img.Channels))

	return tex
}

// Close ends the pass: the default texture is destroyed if no shape took it.
// Cached textures stay alive; they belong to the shapes now.
func (c *TextureCache) Close() {
	if !c.defUsed && c.def != 0 {
		c.device.DestroyTexture(c.def)
	}
	c.def = 0
	c.entries = nil
}

func (c *TextureCache) useDefault() uint32 {
	c.defUsed = true
	return c.def
}
