package display

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/scopeworks/wavescope/internal/render"
)

// pointBytes is the device-side size of one waveform point (two float32s).
const pointBytes = 2 * 4

// Backend is the OpenGL implementation of [render.Backend]: one dynamic
// vertex buffer of 2D points drawn as a line strip in a fixed color.
// All methods must be called on the main goroutine with the window's GL
// context current.
type Backend struct {
	program      uint32
	colorUniform int32
	vao          uint32
	vbo          uint32
	capacity     int
	zeros        []render.Point
}

var _ render.Backend = (*Backend)(nil)

// NewBackend compiles the waveform shaders and prepares the GL pipeline.
// color is the trace color as normalized RGBA.
func NewBackend(color [4]float32) (*Backend, error) {
	vert, err := compileShader(gl.VERTEX_SHADER, vertexShaderSource)
	if err != nil {
		return nil, err
	}
	frag, err := compileShader(gl.FRAGMENT_SHADER, fragmentShaderSource)
	if err != nil {
		gl.DeleteShader(vert)
		return nil, err
	}

	program, err := linkProgram(vert, frag)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	if err != nil {
		return nil, err
	}

	gl.Enable(gl.LINE_SMOOTH)
	gl.Hint(gl.LINE_SMOOTH_HINT, gl.NICEST)
	gl.LineWidth(1)

	b := &Backend{
		program:      program,
		colorUniform: gl.GetUniformLocation(program, gl.Str("color\x00")),
	}

	gl.UseProgram(program)
	gl.Uniform4f(b.colorUniform, color[0], color[1], color[2], color[3])
	gl.UseProgram(0)

	return b, nil
}

// Alloc creates the vertex buffer and array object for numPoints points.
func (b *Backend) Alloc(numPoints int) error {
	gl.GenBuffers(1, &b.vbo)
	if b.vbo == 0 {
		return fmt.Errorf("failed to create vertex buffer")
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, numPoints*pointBytes, nil, gl.DYNAMIC_DRAW)

	gl.GenVertexArrays(1, &b.vao)
	if b.vao == 0 {
		return fmt.Errorf("failed to create vertex array")
	}
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	position := uint32(gl.GetAttribLocation(b.program, gl.Str("position\x00")))
	gl.VertexAttribPointerWithOffset(position, 2, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(position)

	b.capacity = numPoints
	b.zeros = make([]render.Point, numPoints)
	return nil
}

// Upload copies pts into the vertex buffer at the given point offset.
func (b *Backend) Upload(offset int, pts []render.Point) {
	if len(pts) == 0 || offset+len(pts) > b.capacity {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, offset*pointBytes, len(pts)*pointBytes, unsafe.Pointer(&pts[0]))
}

// ClearPoints zeroes a region of the vertex buffer.
func (b *Backend) ClearPoints(offset, n int) {
	if n <= 0 || offset+n > b.capacity {
		return
	}
	b.Upload(offset, b.zeros[:n])
}

// DrawLineStrip draws the first count points as a connected line strip.
func (b *Backend) DrawLineStrip(count int) {
	if count < 2 {
		return
	}
	gl.UseProgram(b.program)
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINE_STRIP, 0, int32(count))
}

// Clear clears the frame.
func (b *Backend) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
