// Package renderer draws uploaded OBJ models with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/wfobj/internal/engine/debug"
	"github.com/Faultbox/wfobj/internal/engine/shader"
	"github.com/Faultbox/wfobj/internal/logger"
	"github.com/Faultbox/wfobj/pkg/formats"
)

// Color modes understood by the model fragment shader.
const (
	colorModeTexture int32 = iota
	colorModeVertex
	colorModeFlat
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
	lines   *shader.Program
	log     *zap.Logger

	boxVAO uint32
	boxVBO uint32

	// vertex array per uploaded shape
	vaos map[*formats.Shape]uint32

	LightDir mgl32.Vec3
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.Named("renderer"),
		vaos:     make(map[*formats.Shape]uint32),
		LightDir: mgl32.Vec3{-0.4, -1, -0.6}.Normalize(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.Compile(modelVertexShader, modelFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.lines, err = shader.Compile(lineVertexShader, lineFragmentShader)
	if err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("failed to create line program: %w", err)
	}

	gl.GenVertexArrays(1, &r.boxVAO)
	gl.BindVertexArray(r.boxVAO)
	gl.GenBuffers(1, &r.boxVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boxVBO)
	gl.BufferData(gl.ARRAY_BUFFER, debug.BoxVertexCount*3*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.ForgetAll()
	if r.boxVAO != 0 {
		gl.DeleteVertexArrays(1, &r.boxVAO)
	}
	if r.boxVBO != 0 {
		gl.DeleteBuffers(1, &r.boxVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
	if r.lines != nil {
		r.lines.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawModel draws every visible uploaded shape of m.
func (r *Renderer) DrawModel(m *formats.Model, viewProj mgl32.Mat4) {
	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform("uMVP"), 1, false, &viewProj[0])
	gl.Uniform3fv(r.program.Uniform("uLightDir"), 1, &r.LightDir[0])
	gl.Uniform1i(r.program.Uniform("uTexture"), 0)
	gl.ActiveTexture(gl.TEXTURE0)

	mode := colorModeTexture
	if m.Color != nil {
		mode = colorModeFlat
		gl.Uniform3f(r.program.Uniform("uFlatColor"), m.Color.R, m.Color.G, m.Color.B)
	}

	for _, s := range m.Shapes {
		if !s.Visible || s.VBO == 0 || s.IndexCount == 0 {
			continue
		}

		shapeMode := mode
		if s.WithColor && mode != colorModeFlat {
			shapeMode = colorModeVertex
		}
		gl.Uniform1i(r.program.Uniform("uColorMode"), shapeMode)
		gl.BindTexture(gl.TEXTURE_2D, s.Texture)

		gl.BindVertexArray(r.vertexArray(s))
		gl.DrawElements(gl.TRIANGLES, int32(s.IndexCount-s.IndexCount%3), gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
}

// DrawBounds outlines a bounding box.
func (r *Renderer) DrawBounds(min, max mgl32.Vec3, viewProj mgl32.Mat4) {
	lines := debug.BoxLines(min, max, 0)

	r.lines.Use()
	gl.UniformMatrix4fv(r.lines.Uniform("uMVP"), 1, false, &viewProj[0])
	gl.Uniform3f(r.lines.Uniform("uColor"), 1, 0.8, 0.2)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.boxVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(lines)*4, gl.Ptr(lines))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.BindVertexArray(r.boxVAO)
	gl.DrawArrays(gl.LINES, 0, debug.BoxVertexCount)
	gl.BindVertexArray(0)
}

// ReadPixels returns the bottom-up RGBA contents of the framebuffer.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Forget releases the vertex arrays built for the shapes of m.
// Call it before the model's buffers are erased.
func (r *Renderer) Forget(m *formats.Model) {
	for _, s := range m.Shapes {
		if vao, ok := r.vaos[s]; ok {
			gl.DeleteVertexArrays(1, &vao)
			delete(r.vaos, s)
		}
	}
}

// ForgetAll releases every vertex array.
func (r *Renderer) ForgetAll() {
	for s, vao := range r.vaos {
		gl.DeleteVertexArrays(1, &vao)
		delete(r.vaos, s)
	}
}

// vertexArray binds the attribute layout of a shape's interleaved buffer.
func (r *Renderer) vertexArray(s *formats.Shape) uint32 {
	if vao, ok := r.vaos[s]; ok {
		return vao
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.VBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.IBO)

	stride := int32(s.Stride() * 4)
	// position(3) + normal(3) + texcoord(2) [+ color(3)]
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)
	if s.WithColor {
		gl.VertexAttribPointerWithOffset(3, 3, gl.FLOAT, false, stride, 8*4)
		gl.EnableVertexAttribArray(3)
	} else {
		gl.DisableVertexAttribArray(3)
		gl.VertexAttrib3f(3, 1, 1, 1)
	}

	gl.BindVertexArray(0)
	r.vaos[s] = vao

	r.log.Debug("vertex array created",
		zap.String("shape", s.Name),
		zap.Uint32("vao", vao),
		zap.Int32("stride", stride))
	return vao
}
