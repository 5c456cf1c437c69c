// Package shader builds the program the triangle is drawn with.
package shader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gotriangle/graphics"
)

// Sources are WebGL2 GLSL and are translated for the desktop context
// before compiling.

const vertexShaderSource = `#version 300 es
layout(location = 0) in vec3 in_position;
void main() {
    gl_Position = vec4(in_position, 1.0);
}
`

const fragmentShaderSource = `#version 300 es
precision highp float;
out vec4 frag_color;
void main() {
    frag_color = vec4(%f, %f, %f, %f);
}
`

// DefaultColor is the triangle's fill color.
var DefaultColor = mgl32.Vec4{1, 1, 1, 1}

// GenerateVertexShader returns a vertex shader that passes attribute slot 0
// straight through as the clip-space position.
func GenerateVertexShader() string {
	return vertexShaderSource
}

// GenerateFragmentShader returns a fragment shader filling with color.
func GenerateFragmentShader(color mgl32.Vec4) string {
	return fmt.Sprintf(fragmentShaderSource, color[0], color[1], color[2], color[3])
}

// TranslateFunc converts WebGL2 source for stage ("vertex" or "fragment")
// into source the current context can compile.
type TranslateFunc func(source, stage string) (string, error)

// Program is a linked vertex/fragment program.
type Program struct {
	device graphics.Device
	id     uint32
}

// NewProgram translates, compiles and links the triangle program.
func NewProgram(device graphics.Device, translate TranslateFunc, color mgl32.Vec4) (*Program, error) {
	vs, err := translate(GenerateVertexShader(), "vertex")
	if err != nil {
		return nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fs, err := translate(GenerateFragmentShader(color), "fragment")
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	id, err := device.CreateProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	return &Program{device: device, id: id}, nil
}

func (p *Program) ID() uint32 { return p.id }

func (p *Program) Use() {
	p.device.UseProgram(p.id)
}

func (p *Program) Release() {
	p.device.UseProgram(0)
}

func (p *Program) Destroy() {
	if p.id == 0 {
		return
	}
	p.device.DeleteProgram(p.id)
	p.id = 0
}
