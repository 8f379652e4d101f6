package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// OBJ format errors.
var (
	ErrMalformedRecord    = errors.New("malformed OBJ record")
	ErrIndexCountMismatch = errors.New("index count mismatch")
	ErrIndexOutOfRange    = errors.New("vertex index out of range")
	ErrCapacityExceeded   = errors.New("shape buffer capacity exceeded")
)

// DefaultMaxElements is the per-buffer element cap applied while a shape is accumulated.
const DefaultMaxElements = 100000

// maxLineLength bounds a single source line.
const maxLineLength = 1 << 20

// Interleaved array strides in floats.
const (
	Stride      = 8  // position(3) + normal(3) + texcoord(2)
	ColorStride = 11 // Stride + color(3)
)

// AssetLoader returns the raw bytes of a file referenced by a model.
type AssetLoader interface {
	Load(path string) ([]byte, error)
}

// Color is an RGB color with float components.
type Color struct {
	R, G, B float32
}

// Context is the parsing and upload state shared by every shape of one model.
type Context struct {
	// Assets resolves mtllib and texture paths. Nil disables material loading.
	Assets AssetLoader

	// Log receives parser diagnostics.
	Log *zap.Logger

	// MaxElements caps each accumulation buffer. Zero means unlimited.
	MaxElements int

	shapes int
}

// NextShapeID returns the next shape id and advances the counter.
func (c *Context) NextShapeID() int {
	id := c.shapes
	c.shapes++
	return id
}

// ShapeCount returns how many shape ids have been assigned.
func (c *Context) ShapeCount() int {
	return c.shapes
}

// Shape is one named drawable unit ("o" or "g" in the source).
type Shape struct {
	ID          int
	Name        string
	Visible     bool
	TexturePath string // empty when no material texture resolved
	WithColor   bool
	Color       Color // color of the last expanded corner when WithColor

	// Vertices is the interleaved array, Stride or ColorStride floats per corner.
	Vertices  []float32
	ArraySize int

	// Indices holds one entry per emitted triangle corner.
	Indices    []uint32
	IndexCount int

	// GPU handles, populated by the upload phase only.
	VBO     uint32
	IBO     uint32
	Texture uint32
}

// Stride returns the number of floats per interleaved vertex.
func (s *Shape) Stride() int {
	if s.WithColor {
		return ColorStride
	}
	return Stride
}

// ReleaseArrays drops the CPU-side arrays, keeping their sizes.
func (s *Shape) ReleaseArrays() {
	s.Vertices = nil
	s.Indices = nil
}

// Model is a parsed OBJ model.
type Model struct {
	Name string

	// Color overrides material texturing with flat color when non-nil.
	Color *Color

	// IgnoreTexture skips texcoord parsing and allocation.
	IgnoreTexture bool

	// Min and Max are the bounding box corners over every emitted position.
	Min mgl32.Vec3
	Max mgl32.Vec3

	Shapes []*Shape

	ctx *Context
}

// NewModel returns an empty model with an uninitialized bounding box.
func NewModel(name string) *Model {
	m := &Model{Name: name}
	m.ResetExtents()
	return m
}

// ResetExtents seeds the bounding box: min at +Inf, max at zero.
func (m *Model) ResetExtents() {
	inf := math32.Inf(1)
	m.Min = mgl32.Vec3{inf, inf, inf}
	m.Max = mgl32.Vec3{}
}

// Context returns the model's private context, creating it on first use.
func (m *Model) Context() *Context {
	if m.ctx == nil {
		m.ctx = &Context{
			Log:         zap.NewNop(),
			MaxElements: DefaultMaxElements,
		}
	}
	return m.ctx
}

// HasContext reports whether a context has been created.
func (m *Model) HasContext() bool {
	return m.ctx != nil
}

// Erase releases every shape and the context. GPU handles must be
// released by the caller beforehand.
func (m *Model) Erase() {
	m.Shapes = nil
	m.ctx = nil
}

// IndexCount returns the total number of indices over all shapes.
func (m *Model) IndexCount() int {
	n := 0
	for _, s := range m.Shapes {
		n += s.IndexCount
	}
	return n
}

func (m *Model) extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		m.Max[i] = math32.Max(m.Max[i], p[i])
		m.Min[i] = math32.Min(m.Min[i], p[i])
	}
}

// lineKind classifies an OBJ source line by its leading keyword.
type lineKind int

const (
	lineIgnored lineKind = iota
	lineObject
	lineMaterialLib
	lineUseMaterial
	lineFace
	lineVertex
	lineNormal
	lineTexCoord
)

var lineKeywords = []struct {
	prefix string
	kind   lineKind
}{
	{"o ", lineObject},
	{"g ", lineObject},
	{"mtllib ", lineMaterialLib},
	{"usemtl ", lineUseMaterial},
	{"f ", lineFace},
	{"v ", lineVertex},
	{"vn", lineNormal},
	{"vt", lineTexCoord},
}

// classifyLine returns the kind of line and the text following the keyword.
func classifyLine(line string) (lineKind, string) {
	for _, kw := range lineKeywords {
		if strings.HasPrefix(line, kw.prefix) {
			return kw.kind, line[len(kw.prefix):]
		}
	}
	return lineIgnored, ""
}

// ParseOBJ parses OBJ source text into model, appending shapes and
// growing its bounding box. On error the model is left partially
// populated and should be erased by the caller.
func ParseOBJ(data []byte, model *Model) error {
	ctx := model.Context()
	log := ctx.Log
	start := time.Now()

	acc := newShapeAccumulator(ctx.MaxElements, model.IgnoreTexture)
	materials := newMaterialSet(ctx)
	named := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		kind, rest := classifyLine(line)

		var err error
		switch kind {
		case lineObject:
			if acc.hasFaces() {
				if err = acc.commit(model); err != nil {
					break
				}
			}
			acc.name = rest
			named = true
		case lineMaterialLib:
			if model.Color == nil {
				materials.load(rest)
			}
		case lineUseMaterial:
			if model.Color == nil {
				log.Info("use material", zap.String("material", rest))
				if path, ok := materials.texture(rest); ok {
					acc.texturePath = path
				}
			}
		case lineFace:
			err = acc.resolveFace(rest, log)
		case lineVertex:
			err = acc.addVertex(rest)
		case lineNormal:
			err = acc.addNormal(rest)
		case lineTexCoord:
			if !model.IgnoreTexture {
				err = acc.addTexCoord(rest)
			}
		}

		if err != nil {
			log.Error("failed to parse model",
				zap.Int("line", lineNo),
				zap.String("text", line),
				zap.Error(err))
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("line %d: %w", lineNo+1, err)
	}

	if !named || acc.hasFaces() {
		if !named {
			acc.name = model.Name
		}
		if err := acc.commit(model); err != nil {
			log.Error("failed to prepare final shape", zap.Error(err))
			return err
		}
	}

	log.Info("model parsed",
		zap.String("model", model.Name),
		zap.Int("shapes", ctx.ShapeCount()),
		zap.Duration("elapsed", time.Since(start)))
	log.Info("model extents",
		zap.Float32s("min", model.Min[:]),
		zap.Float32s("max", model.Max[:]))

	return nil
}

// scanFloats parses up to n leading whitespace-separated floats from s and
// returns how many parsed before the first failure.
func scanFloats(s string, out []float32) int {
	fields := strings.Fields(s)
	n := 0
	for n < len(out) && n < len(fields) {
		f, err := strconv.ParseFloat(fields[n], 32)
		if err != nil {
			break
		}
		out[n] = float32(f)
		n++
	}
	return n
}
