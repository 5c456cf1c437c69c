// Package vertex holds vertex data on the GPU: buffers of raw floats and the
// vertex arrays that describe how attribute slots read them.
package vertex

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gotriangle/graphics"
)

// ErrLayout reports data that cannot be split into whole vertices.
var ErrLayout = errors.New("invalid vertex layout")

// Buffer is a static array buffer. Its data is uploaded once at creation.
type Buffer struct {
	device graphics.Device
	id     uint32

	componentCount int
	size           int
}

// NewBuffer uploads data to a new buffer. componentCount is the number of
// floats per vertex and must divide len(data).
func NewBuffer(device graphics.Device, data []float32, componentCount int) (*Buffer, error) {
	if componentCount <= 0 {
		return nil, fmt.Errorf("%w: component count %d", ErrLayout, componentCount)
	}
	if len(data)%componentCount != 0 {
		return nil, fmt.Errorf("%w: %d floats is not a multiple of %d components", ErrLayout, len(data), componentCount)
	}

	b := &Buffer{
		device:         device,
		componentCount: componentCount,
		size:           len(data),
	}
	b.id = device.GenBuffer()
	device.BindBuffer(graphics.ArrayBuffer, b.id)
	device.BufferData(graphics.ArrayBuffer, data, graphics.StaticDraw)
	device.BindBuffer(graphics.ArrayBuffer, 0)

	return b, nil
}

// NewBufferVec3 uploads three-component positions.
func NewBufferVec3(device graphics.Device, vertices []mgl32.Vec3) (*Buffer, error) {
	return NewBuffer(device, Flatten(vertices), 3)
}

// Flatten packs vectors into a contiguous float slice.
func Flatten(vertices []mgl32.Vec3) []float32 {
	data := make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		data = append(data, v.X(), v.Y(), v.Z())
	}
	return data
}

func (b *Buffer) Bind() {
	b.device.BindBuffer(graphics.ArrayBuffer, b.id)
}

func (b *Buffer) Unbind() {
	b.device.BindBuffer(graphics.ArrayBuffer, 0)
}

func (b *Buffer) ID() uint32 { return b.id }

// ComponentCount is the number of floats per vertex.
func (b *Buffer) ComponentCount() int { return b.componentCount }

// Size is the total number of floats uploaded.
func (b *Buffer) Size() int { return b.size }

// VertexCount is Size divided by ComponentCount.
func (b *Buffer) VertexCount() int { return b.size / b.componentCount }

// Destroy deletes the GPU storage. It must not be called while a vertex
// array still reads from the buffer; buffers attached to an Array are
// destroyed by Array.Destroy.
func (b *Buffer) Destroy() {
	if b.id == 0 {
		return
	}
	b.device.DeleteBuffer(b.id)
	b.id = 0
}
