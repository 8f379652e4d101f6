// Package model loads Wavefront OBJ models from an asset source and moves
// them onto the GPU.
//
// The lifecycle is Prepare (read + parse), Upload (buffers + textures) and
// Erase (release everything). Erase must be called once the model is no
// longer drawn, including after a failed Prepare.
package model

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wfobj/pkg/formats"
)

// Option configures the parse context of a model before Prepare runs.
type Option func(*formats.Context)

// WithLogger overrides the logger parser and uploader diagnostics go to.
func WithLogger(log *zap.Logger) Option {
	return func(c *formats.Context) {
		if log != nil {
			c.Log = log
		}
	}
}

// WithMaxElements caps every accumulation buffer. Zero disables the cap.
func WithMaxElements(n int) Option {
	return func(c *formats.Context) {
		if n >= 0 {
			c.MaxElements = n
		}
	}
}

// UploadStats summarizes one Upload pass.
type UploadStats struct {
	Shapes     int // shapes given GPU buffers
	Skipped    int // shapes with no geometry
	Textures   int // distinct textures created, excluding the default
	ArrayBytes int
	IndexBytes int
	Elapsed    time.Duration
}
