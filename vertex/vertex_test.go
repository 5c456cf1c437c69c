package vertex

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gotriangle/graphics"
	"github.com/richinsley/gotriangle/graphics/graphicstest"
	"github.com/stretchr/testify/require"
)

var triangle = []float32{
	0.0, 0.5, 0.0,
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
}

func TestNewBuffer(t *testing.T) {
	device := graphicstest.NewDevice()

	b, err := NewBuffer(device, triangle, 3)
	require.NoError(t, err)
	require.Equal(t, 9, b.Size())
	require.Equal(t, 3, b.ComponentCount())
	require.Equal(t, 3, b.VertexCount())

	require.Equal(t, triangle, device.Buffers[b.ID()])
	require.Zero(t, device.BoundBuffer)
	require.Equal(t, []any{graphics.ArrayBuffer, 9, graphics.StaticDraw}, device.Calls[2].Args)
	require.Empty(t, device.Violations)
}

func TestNewBufferLayout(t *testing.T) {
	device := graphicstest.NewDevice()

	_, err := NewBuffer(device, triangle, 0)
	require.ErrorIs(t, err, ErrLayout)

	_, err = NewBuffer(device, triangle, 4)
	require.ErrorIs(t, err, ErrLayout)

	require.Empty(t, device.Calls)
}

func TestNewBufferVec3(t *testing.T) {
	device := graphicstest.NewDevice()
	b, err := NewBufferVec3(device, []mgl32.Vec3{{0, 0.5, 0}, {-0.5, -0.5, 0}, {0.5, -0.5, 0}})
	require.NoError(t, err)
	require.Equal(t, triangle, device.Buffers[b.ID()])
}

func TestBufferBind(t *testing.T) {
	device := graphicstest.NewDevice()
	b, err := NewBuffer(device, triangle, 3)
	require.NoError(t, err)

	b.Bind()
	require.Equal(t, b.ID(), device.BoundBuffer)
	b.Unbind()
	require.Zero(t, device.BoundBuffer)
}

func TestBufferDestroy(t *testing.T) {
	device := graphicstest.NewDevice()
	b, err := NewBuffer(device, triangle, 3)
	require.NoError(t, err)
	id := b.ID()

	b.Destroy()
	b.Destroy()
	require.NotContains(t, device.Buffers, id)
	require.Len(t, device.Deleted, 1)
	require.Empty(t, device.Violations)
}

func TestAddBuffer(t *testing.T) {
	device := graphicstest.NewDevice()
	vao := NewArray(device)
	b, err := NewBuffer(device, triangle, 3)
	require.NoError(t, err)

	require.NoError(t, vao.AddBuffer(b, 0))

	attrib := device.VertexArrays[vao.ID()][0]
	require.NotNil(t, attrib)
	require.True(t, attrib.Enabled)
	require.Equal(t, b.ID(), attrib.Buffer)
	require.Equal(t, int32(3), attrib.Size)
	require.Equal(t, graphics.Float, attrib.Type)
	require.False(t, attrib.Normalized)
	require.Zero(t, attrib.Stride)
	require.Zero(t, attrib.Offset)

	require.Zero(t, device.BoundBuffer)
	require.Zero(t, device.BoundVertexArray)
	require.Equal(t, []*Buffer{b}, vao.Buffers())
	require.Same(t, b, vao.Buffer(0))
	require.Nil(t, vao.Buffer(1))

	vao.Bind()
	require.Equal(t, vao.ID(), device.BoundVertexArray)
	vao.Unbind()
	require.Zero(t, device.BoundVertexArray)
	require.Zero(t, device.BoundBuffer)
	require.Empty(t, device.Violations)
}

func TestAddBufferSlotInUse(t *testing.T) {
	device := graphicstest.NewDevice()
	vao := NewArray(device)
	first, err := NewBuffer(device, triangle, 3)
	require.NoError(t, err)
	second, err := NewBuffer(device, triangle, 3)
	require.NoError(t, err)

	require.NoError(t, vao.AddBuffer(first, 0))
	require.ErrorIs(t, vao.AddBuffer(second, 0), ErrSlotInUse)
	require.NoError(t, vao.AddBuffer(second, 1))
	require.Equal(t, []*Buffer{first, second}, vao.Buffers())
}

func TestArrayDestroyOrder(t *testing.T) {
	device := graphicstest.NewDevice()
	vao := NewArray(device)
	first, err := NewBuffer(device, triangle, 3)
	require.NoError(t, err)
	second, err := NewBuffer(device, triangle, 3)
	require.NoError(t, err)
	require.NoError(t, vao.AddBuffer(first, 0))
	require.NoError(t, vao.AddBuffer(second, 1))

	vao.Destroy()
	vao.Destroy()

	require.Equal(t, []string{"vao:1", "buffer:3", "buffer:2"}, device.Deleted)
	require.Empty(t, device.VertexArrays)
	require.Empty(t, device.Buffers)
	require.Empty(t, device.Violations)
}

func TestDestroyReferencedBufferIsFlagged(t *testing.T) {
	device := graphicstest.NewDevice()
	vao := NewArray(device)
	b, err := NewBuffer(device, triangle, 3)
	require.NoError(t, err)
	require.NoError(t, vao.AddBuffer(b, 0))

	b.Destroy()
	require.Len(t, device.Violations, 1)
}
