package renderer

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gotriangle/graphics"
	"github.com/richinsley/gotriangle/shader"
	"github.com/richinsley/gotriangle/vertex"
)

// positionSlot is the attribute slot the vertex shader reads positions from.
const positionSlot = 0

// backgroundColor is what each frame is cleared to.
var backgroundColor = mgl32.Vec4{0.1, 0.1, 0.15, 1}

var triangleVertices = []mgl32.Vec3{
	{0.0, 0.5, 0.0},
	{-0.5, -0.5, 0.0},
	{0.5, -0.5, 0.0},
}

// Scene holds the GPU resources for the triangle.
type Scene struct {
	device  graphics.Device
	program *shader.Program
	vao     *vertex.Array

	// vertexCount is fixed when the buffer is attached.
	vertexCount int32
}

// LoadScene builds the program, then the vertex array and its position
// buffer. On failure everything already created is released.
func LoadScene(device graphics.Device, translate shader.TranslateFunc) (*Scene, error) {
	program, err := shader.NewProgram(device, translate, shader.DefaultColor)
	if err != nil {
		return nil, err
	}
	device.ClearColor(backgroundColor[0], backgroundColor[1], backgroundColor[2], backgroundColor[3])

	vao := vertex.NewArray(device)
	buffer, err := vertex.NewBufferVec3(device, triangleVertices)
	if err != nil {
		vao.Destroy()
		program.Destroy()
		return nil, fmt.Errorf("failed to create vertex buffer: %w", err)
	}
	if err := vao.AddBuffer(buffer, positionSlot); err != nil {
		buffer.Destroy()
		vao.Destroy()
		program.Destroy()
		return nil, err
	}

	return &Scene{
		device:      device,
		program:     program,
		vao:         vao,
		vertexCount: int32(buffer.VertexCount()),
	}, nil
}

// Draw issues the triangle draw call. The caller clears and presents.
func (s *Scene) Draw() {
	s.program.Use()
	s.vao.Bind()
	s.device.DrawArrays(graphics.Triangles, 0, s.vertexCount)
	s.vao.Unbind()
	s.program.Release()
}

func (s *Scene) VertexCount() int32 { return s.vertexCount }

// Destroy releases resources in reverse creation order: the vertex array
// with its buffer, then the program.
func (s *Scene) Destroy() {
	if s == nil {
		return
	}
	log.Printf("Destroying scene")
	s.vao.Destroy()
	s.program.Destroy()
}
