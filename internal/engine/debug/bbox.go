// Package debug provides viewer overlays and capture utilities.
package debug

import "github.com/go-gl/mathgl/mgl32"

// BoxVertexCount is the number of vertices of a box wireframe (12 edges x 2).
const BoxVertexCount = 24

// BoxLines returns line-list vertices, [x, y, z] each, outlining the box
// between min and max grown by padding on every side.
func BoxLines(min, max mgl32.Vec3, padding float32) []float32 {
	pad := mgl32.Vec3{padding, padding, padding}
	lo := min.Sub(pad)
	hi := max.Add(pad)

	// corners indexed by bit: 1 = x, 2 = y, 4 = z
	var corners [8]mgl32.Vec3
	for i := range corners {
		c := lo
		if i&1 != 0 {
			c[0] = hi[0]
		}
		if i&2 != 0 {
			c[1] = hi[1]
		}
		if i&4 != 0 {
			c[2] = hi[2]
		}
		corners[i] = c
	}

	edges := [12][2]int{
		{0, 1}, {1, 5}, {5, 4}, {4, 0}, // bottom
		{2, 3}, {3, 7}, {7, 6}, {6, 2}, // top
		{0, 2}, {1, 3}, {5, 7}, {4, 6}, // vertical
	}

	out := make([]float32, 0, BoxVertexCount*3)
	for _, e := range edges {
		a, b := corners[e[0]], corners[e[1]]
		out = append(out, a[0], a[1], a[2], b[0], b[1], b[2])
	}
	return out
}
