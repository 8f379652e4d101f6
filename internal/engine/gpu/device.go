// Package gpu defines the buffer and texture calls the model uploader makes.
// The OpenGL implementation lives in the renderer package; Counter is a
// headless one.
package gpu

// Device creates and destroys GPU resources. Handles are never zero.
type Device interface {
	// CreateVertexBuffer uploads an interleaved float array.
	CreateVertexBuffer(data []float32) uint32

	// CreateIndexBuffer uploads a triangle index array.
	CreateIndexBuffer(data []uint32) uint32

	// CreateTexture uploads packed pixels with 3 (RGB) or 4 (RGBA) channels.
	CreateTexture(pix []byte, width, height, channels int) uint32

	DestroyBuffer(handle uint32)
	DestroyTexture(handle uint32)
}
