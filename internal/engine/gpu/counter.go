package gpu

// Counter is a headless Device that hands out handles and tracks the
// resources and bytes that would be live on a real GPU.
type Counter struct {
	next uint32
	live map[uint32]int // handle -> bytes

	Buffers      int
	Textures     int
	BufferBytes  int
	TextureBytes int
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{live: make(map[uint32]int)}
}

func (c *Counter) create(bytes int) uint32 {
	c.next++
	c.live[c.next] = bytes
	return c.next
}

// CreateVertexBuffer records a vertex buffer.
func (c *Counter) CreateVertexBuffer(data []float32) uint32 {
	c.Buffers++
	c.BufferBytes += len(data) * 4
	return c.create(len(data) * 4)
}

// CreateIndexBuffer records an index buffer.
func (c *Counter) CreateIndexBuffer(data []uint32) uint32 {
	c.Buffers++
	c.BufferBytes += len(data) * 4
	return c.create(len(data) * 4)
}

// CreateTexture records a texture.
func (c *Counter) CreateTexture(pix []byte, width, height, channels int) uint32 {
	n := width * height * channels
	c.Textures++
	c.TextureBytes += n
	return c.create(n)
}

// DestroyBuffer forgets a buffer. Unknown handles are ignored.
func (c *Counter) DestroyBuffer(handle uint32) {
	if n, ok := c.live[handle]; ok {
		c.Buffers--
		c.BufferBytes -= n
		delete(c.live, handle)
	}
}

// DestroyTexture forgets a texture. Unknown handles are ignored.
func (c *Counter) DestroyTexture(handle uint32) {
	if n, ok := c.live[handle]; ok {
		c.Textures--
		c.TextureBytes -= n
		delete(c.live, handle)
	}
}

// Live returns the number of resources not yet destroyed.
func (c *Counter) Live() int {
	return len(c.live)
}
