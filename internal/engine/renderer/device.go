package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/wfobj/internal/engine/gpu"
)

// Device is a gpu.Device backed by the current OpenGL 4.1 context.
// All calls must be made from the thread owning the context.
type Device struct{}

var _ gpu.Device = Device{}

// NewDevice returns an OpenGL device. New must have run first so the GL
// function pointers are loaded.
func NewDevice() Device {
	return Device{}
}

// CreateVertexBuffer uploads data to a new STATIC_DRAW array buffer.
func (Device) CreateVertexBuffer(data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(unsafe.SliceData(data)), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vbo
}

// CreateIndexBuffer uploads data to a new STATIC_DRAW element buffer.
func (Device) CreateIndexBuffer(data []uint32) uint32 {
	var ibo uint32
	gl.GenBuffers(1, &ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, unsafe.Pointer(unsafe.SliceData(data)), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return ibo
}

// CreateTexture uploads a 2D texture with linear filtering and repeat wrapping.
func (Device) CreateTexture(pix []byte, width, height, channels int) uint32 {
	format := uint32(gl.RGB)
	if channels == 4 {
		format = gl.RGBA
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	// RGB rows are not 4-byte aligned for odd widths
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(width), int32(height), 0,
		format, gl.UNSIGNED_BYTE, unsafe.Pointer(unsafe.SliceData(pix)))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// DestroyBuffer deletes a buffer object.
func (Device) DestroyBuffer(handle uint32) {
	gl.DeleteBuffers(1, &handle)
}

// DestroyTexture deletes a texture object.
func (Device) DestroyTexture(handle uint32) {
	gl.DeleteTextures(1, &handle)
}
