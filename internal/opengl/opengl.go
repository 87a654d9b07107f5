package opengl

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ThatOtherAndrew/Flasher/internal/models"
	"github.com/ThatOtherAndrew/Flasher/internal/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var ErrContextUnavailable = errors.New("OpenGL context unavailable")

// Sizer reports the drawable size in pixels.
type Sizer interface {
	GetFramebufferSize() (int, int)
}

type Options struct {
	// ShaderDir, when set, loads solid.vert.glsl and solid.frag.glsl from
	// disk instead of the embedded copies.
	ShaderDir string
}

// Renderer draws a single full-viewport quad in a uniform color.
type Renderer struct {
	surface  Sizer
	opts     Options
	program  uint32
	vao      uint32
	vbo      uint32
	colorLoc int32
}

func New(surface Sizer, opts Options) *Renderer {
	return &Renderer{surface: surface, opts: opts}
}

// InitGL loads the GL entry points for the current context and builds the
// program and quad. Must run on the thread that owns the context.
func (r *Renderer) InitGL() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}

	vertShader, fragShader, err := r.compile()
	if err != nil {
		return err
	}

	r.program, err = shaders.LinkProgram(vertShader, fragShader)
	if err != nil {
		return err
	}

	r.colorLoc = gl.GetUniformLocation(r.program, gl.Str("color\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	quadVertices := []float32{
		-1.0, 1.0,
		1.0, 1.0,
		-1.0, -1.0,
		1.0, -1.0,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)

	return nil
}

func (r *Renderer) compile() (uint32, uint32, error) {
	if r.opts.ShaderDir != "" {
		vertShader, err := shaders.CompileShaderFromFile(
			filepath.Join(r.opts.ShaderDir, "solid.vert.glsl"),
			gl.VERTEX_SHADER,
		)
		if err != nil {
			return 0, 0, err
		}
		fragShader, err := shaders.CompileShaderFromFile(
			filepath.Join(r.opts.ShaderDir, "solid.frag.glsl"),
			gl.FRAGMENT_SHADER,
		)
		if err != nil {
			gl.DeleteShader(vertShader)
			return 0, 0, err
		}
		return vertShader, fragShader, nil
	}

	vertShader, err := shaders.CompileShaderFromSource(shaders.SolidVertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, 0, err
	}
	fragShader, err := shaders.CompileShaderFromSource(shaders.SolidFragment, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertShader)
		return 0, 0, err
	}
	return vertShader, fragShader, nil
}

func (r *Renderer) DrawSolid(c models.Color) {
	width, height := r.surface.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))

	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.Uniform4f(r.colorLoc, c.R, c.G, c.B, c.A)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

func (r *Renderer) Destroy() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}
