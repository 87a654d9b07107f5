package shaders

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

//go:embed solid.vert.glsl
var SolidVertex string

//go:embed solid.frag.glsl
var SolidFragment string

var (
	ErrCompile = errors.New("shader compilation failed")
	ErrLink    = errors.New("shader program linking failed")
)

// CompileShaderFromFile is used with --shader-dir to iterate on shaders
// without rebuilding.
func CompileShaderFromFile(path string, shaderType uint32) (uint32, error) {
	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read shader file %q: %v", path, err)
	}

	shader, err := CompileShaderFromSource(strings.TrimSuffix(string(sourceBytes), "\x00"), shaderType)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return shader, nil
}

func CompileShaderFromSource(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := infoLog(logLength, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, logLength, nil, buf)
		})
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w (%s): %s", ErrCompile, stageName(shaderType), logMsg)
	}

	return shader, nil
}

// LinkProgram links the two stages into a program. The shaders are deleted
// either way.
func LinkProgram(vertShader, fragShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertShader)
	gl.DeleteShader(fragShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := infoLog(logLength, func(buf *uint8) {
			gl.GetProgramInfoLog(program, logLength, nil, buf)
		})
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, logMsg)
	}

	return program, nil
}

func infoLog(length int32, read func(buf *uint8)) string {
	if length <= 0 {
		return "no info log"
	}
	logMsg := make([]byte, length)
	read(&logMsg[0])
	return strings.TrimSpace(strings.TrimRight(string(logMsg), "\x00"))
}

func stageName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return fmt.Sprintf("type 0x%x", shaderType)
	}
}
