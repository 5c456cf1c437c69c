package graphics

// GL enums used by the renderer. Values match the OpenGL headers so a
// Device implementation can pass them straight through.
const (
	DepthBufferBit uint32 = 0x00000100
	ColorBufferBit uint32 = 0x00004000

	Triangles uint32 = 0x0004

	Float uint32 = 0x1406

	ArrayBuffer uint32 = 0x8892
	StaticDraw  uint32 = 0x88E4
)

// Device is the subset of the OpenGL API the renderer drives. Every call
// must happen on the thread that owns the current context.
type Device interface {
	// Init loads the GL function pointers for the current context.
	Init() error

	Clear(mask uint32)
	ClearColor(r, g, b, a float32)

	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []float32, usage uint32)
	DeleteBuffer(buffer uint32)

	GenVertexArray() uint32
	BindVertexArray(array uint32)
	DeleteVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	DrawArrays(mode uint32, first, count int32)

	// CreateProgram compiles and links a vertex/fragment pair.
	CreateProgram(vertexSource, fragmentSource string) (uint32, error)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// ReadPixels reads the current read framebuffer as tightly packed RGBA8
	// into dst, which must hold width*height*4 bytes.
	ReadPixels(x, y, width, height int32, dst []byte)
}
