package formats

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// shapeAccumulator holds the raw attribute and index streams of the shape
// currently being parsed. Colors share the vertex index stream.
type shapeAccumulator struct {
	name        string
	texturePath string

	positions []float32
	colors    []float32
	normals   []float32
	texcoords []float32

	vertexIndices   []int32
	normalIndices   []int32
	texcoordIndices []int32

	withTexcoords bool
	limit         int
}

func newShapeAccumulator(limit int, ignoreTexture bool) *shapeAccumulator {
	return &shapeAccumulator{
		withTexcoords: !ignoreTexture,
		limit:         limit,
	}
}

func (a *shapeAccumulator) hasFaces() bool {
	return len(a.vertexIndices) > 0
}

// reset empties every stream; the pending name and texture are kept.
func (a *shapeAccumulator) reset() {
	a.positions = a.positions[:0]
	a.colors = a.colors[:0]
	a.normals = a.normals[:0]
	a.texcoords = a.texcoords[:0]
	a.vertexIndices = a.vertexIndices[:0]
	a.normalIndices = a.normalIndices[:0]
	a.texcoordIndices = a.texcoordIndices[:0]
}

// checkRoom fails when adding n elements to a buffer of length have would
// exceed the configured cap.
func (a *shapeAccumulator) checkRoom(what string, have, n int) error {
	if a.limit > 0 && have+n > a.limit {
		return fmt.Errorf("%w: %s exceeds %d elements", ErrCapacityExceeded, what, a.limit)
	}
	return nil
}

// addVertex parses "x y z [r g b]".
func (a *shapeAccumulator) addVertex(rest string) error {
	var f [6]float32
	n := scanFloats(rest, f[:])
	switch {
	case n == 6:
		if err := a.checkRoom("positions", len(a.positions), 3); err != nil {
			return err
		}
		if err := a.checkRoom("colors", len(a.colors), 3); err != nil {
			return err
		}
		a.positions = append(a.positions, f[0], f[1], f[2])
		a.colors = append(a.colors, f[3], f[4], f[5])
	case n >= 3:
		if err := a.checkRoom("positions", len(a.positions), 3); err != nil {
			return err
		}
		a.positions = append(a.positions, f[0], f[1], f[2])
	default:
		return fmt.Errorf("%w: 'v float float float' is expected", ErrMalformedRecord)
	}
	return nil
}

// addNormal parses "x y z".
func (a *shapeAccumulator) addNormal(rest string) error {
	var f [3]float32
	if scanFloats(rest, f[:]) != 3 {
		return fmt.Errorf("%w: 'vn float float float' is expected", ErrMalformedRecord)
	}
	if err := a.checkRoom("normals", len(a.normals), 3); err != nil {
		return err
	}
	a.normals = append(a.normals, f[0], f[1], f[2])
	return nil
}

// addTexCoord parses "u v".
func (a *shapeAccumulator) addTexCoord(rest string) error {
	var f [2]float32
	if scanFloats(rest, f[:]) != 2 {
		return fmt.Errorf("%w: 'vt float float' is expected", ErrMalformedRecord)
	}
	if err := a.checkRoom("texcoords", len(a.texcoords), 2); err != nil {
		return err
	}
	a.texcoords = append(a.texcoords, f[0], f[1])
	return nil
}

// lookup returns n floats at index i of a stride-n buffer, or zeros when
// the index falls outside it.
func lookup(buf []float32, i int32, n int) []float32 {
	start := int(i) * n
	if i < 0 || start+n > len(buf) {
		return make([]float32, n)
	}
	return buf[start : start+n]
}

// commit expands the accumulated streams into a new shape on model and
// resets the accumulator.
func (a *shapeAccumulator) commit(model *Model) error {
	vi := len(a.vertexIndices)
	ni := len(a.normalIndices)
	ti := len(a.texcoordIndices)

	if ni != 0 && ni != vi {
		return fmt.Errorf("%w: normal and vertex indices | n %d != v %d", ErrIndexCountMismatch, ni, vi)
	}
	if ti != 0 && ti != vi {
		return fmt.Errorf("%w: uv and vertex indices | uv %d != v %d", ErrIndexCountMismatch, ti, vi)
	}

	ctx := model.Context()
	withColor := len(a.colors) > 0
	stride := Stride
	if withColor {
		stride = ColorStride
	}

	shape := &Shape{
		Name:        a.name,
		Visible:     true,
		TexturePath: a.texturePath,
		WithColor:   withColor,
		Vertices:    make([]float32, 0, vi*stride),
		Indices:     make([]uint32, 0, vi),
	}
	a.texturePath = ""

	for i, vertexIndex := range a.vertexIndices {
		start := int(vertexIndex) * 3
		if vertexIndex < 0 || start+3 > len(a.positions) {
			return fmt.Errorf("%w: corner %d references vertex %d of %d",
				ErrIndexOutOfRange, i, vertexIndex, len(a.positions)/3)
		}
		pos := a.positions[start : start+3]
		shape.Vertices = append(shape.Vertices, pos...)
		model.extend(mgl32.Vec3{pos[0], pos[1], pos[2]})

		shape.Indices = append(shape.Indices, uint32(i))

		if ni == 0 {
			shape.Vertices = append(shape.Vertices, 0, 0, 0)
		} else {
			shape.Vertices = append(shape.Vertices, lookup(a.normals, a.normalIndices[i], 3)...)
		}

		if ti == 0 {
			shape.Vertices = append(shape.Vertices, 0, 0)
		} else {
			shape.Vertices = append(shape.Vertices, lookup(a.texcoords, a.texcoordIndices[i], 2)...)
		}

		if withColor {
			c := lookup(a.colors, vertexIndex, 3)
			shape.Color = Color{R: c[0], G: c[1], B: c[2]}
			shape.Vertices = append(shape.Vertices, c...)
		}
	}

	shape.ArraySize = len(shape.Vertices)
	shape.IndexCount = len(shape.Indices)
	shape.ID = ctx.NextShapeID()

	ctx.Log.Info("shape prepared",
		zap.String("shape", shape.Name),
		zap.Int("id", shape.ID),
		zap.Int("vertex_indices", vi),
		zap.Int("normal_indices", ni),
		zap.Int("uv_indices", ti),
		zap.Int("vertices", len(a.positions)/3),
		zap.Int("normals", len(a.normals)/3),
		zap.Int("uvs", len(a.texcoords)/2),
		zap.Bool("with_color", withColor))

	a.reset()
	model.Shapes = append(model.Shapes, shape)
	return nil
}
